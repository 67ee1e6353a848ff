// Package auth implements the legacy credential check used by
// TrinityCore/AzerothCore-family account stores: a double-SHA1
// verifier over the upper-cased "USERNAME:PASSWORD" pair. The exact
// byte-for-byte hashing order is a compatibility requirement with
// existing account databases and must not be modernized here.
package auth

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
)

// Status classifies the outcome of an authentication attempt. NotFound
// and Rejected are ordinary outcomes, not errors; the HTTP layer
// reports both as the same generic failure so usernames cannot be
// enumerated.
type Status int

const (
	// InvalidInput means the request was rejected before any store
	// access (empty username).
	InvalidInput Status = iota
	// NotFound means no account row matched the username.
	NotFound
	// Rejected means the computed verifier did not match the stored one.
	Rejected
	// Authenticated means the credentials matched.
	Authenticated
)

// Result carries the outcome of Authenticate. AccountID and Username
// are set only when Status is Authenticated; Username is the stored
// canonical casing, not the submitted one.
type Result struct {
	Status    Status
	AccountID uint32
	Username  string
}

// CredentialLookup fetches the stored credential record for a
// case-insensitive username. Implementations return sql.ErrNoRows when
// the account does not exist and wrap database.ErrStoreUnavailable on
// transport failure.
type CredentialLookup interface {
	AccountByUsername(ctx context.Context, username string) (model.Account, error)
}

// Authenticate verifies username/password against the stored salt and
// verifier. It is a pure function of its inputs plus the fetched
// record: all stateful post-login effects (online flag, timestamps,
// launcher upsert) belong to the coordinator. A non-nil error is
// returned only for store-transport failure; wrong credentials are a
// Result, not an error.
func Authenticate(ctx context.Context, username, password string, lookup CredentialLookup) (Result, error) {
	if strings.TrimSpace(username) == "" {
		return Result{Status: InvalidInput}, nil
	}
	// An empty password is not rejected locally; the emulator owns
	// password policy.

	acct, err := lookup.AccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{Status: NotFound}, nil
		}
		return Result{}, fmt.Errorf("credential lookup: %w", err)
	}

	if !VerifyCredentials(username, password, acct.Salt, acct.Verifier) {
		return Result{Status: Rejected}, nil
	}
	return Result{Status: Authenticated, AccountID: acct.ID, Username: acct.Username}, nil
}

// VerifyCredentials reproduces the stored verifier from the submitted
// credentials and compares the two case-insensitively.
//
// The scheme, kept bit-for-bit compatible with the emulator cores:
//
//	first    = hex(SHA1(upper(username + ":" + password)))
//	computed = hex(SHA1(first + salt))
//
// The salt is taken as the raw text stored in the account row, not
// re-decoded from hex, and the lowercase hex of the first digest is
// what feeds the second hash.
func VerifyCredentials(username, password, salt, storedVerifier string) bool {
	first := sha1Hex(strings.ToUpper(username + ":" + password))
	computed := sha1Hex(first + salt)
	return strings.EqualFold(computed, storedVerifier)
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
