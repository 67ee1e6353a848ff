package model

// Position is a point in the game world: map and zone identifiers plus
// the coordinate triple.
type Position struct {
	MapID  int32   `json:"map_id"`
	ZoneID int32   `json:"zone_id"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Z      float32 `json:"z"`
}

// CharacterSummary is the read-only projection of a characters-table
// row that the launcher shows on the character list. GUID and account
// are immutable once the character exists; only the position fields are
// ever written back (by the unstuck operation).
type CharacterSummary struct {
	GUID            uint64   `json:"guid"`
	AccountID       uint32   `json:"account_id"`
	Name            string   `json:"name"`
	Race            uint8    `json:"race"`
	Class           uint8    `json:"class"`
	Level           uint8    `json:"level"`
	Gender          uint8    `json:"gender"`
	Position        Position `json:"position"`
	Online          bool     `json:"online"`
	PlayTimeSeconds uint32   `json:"play_time_seconds"`
}
