package model

import "time"

// Account mirrors a row of the emulator auth store's account table
// (table name varies per expansion/emulator pair). The salt and
// verifier columns hold hex-encoded text written by the emulator's own
// account tooling; this service only ever reads them.
//
// Fields:
//  ID        – account primary key, shared with the launcher store.
//  Username  – case-insensitive unique login name.
//  Salt      – per-account salt, stored as hex text.
//  Verifier  – SHA1(hex(SHA1(upper(user:pass))) + salt), hex text.
//  Locked    – account locked by a GM.
//  Online    – set while a game session (or launcher login) is active.
//  LastLogin – last successful authentication (nullable).
//  LastIP    – source address of the last login.
type Account struct {
	ID        uint32
	Username  string
	Salt      string
	Verifier  string
	Locked    bool
	Online    bool
	LastLogin *time.Time
	LastIP    string
}
