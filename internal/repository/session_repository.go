package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
)

// ErrSessionNotFound is returned when a refresh token hash does not
// match any active (unexpired, unrevoked) session.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepo persists launcher refresh-token sessions in the launcher
// store. Only the SHA-256 hash of a refresh token is stored; the raw
// value goes back to the client once and is never kept server-side.
type SessionRepo struct {
	stores *database.Manager
}

func NewSessionRepo(stores *database.Manager) *SessionRepo {
	return &SessionRepo{stores: stores}
}

// StoreRefresh saves a refresh token hash for the account.
func (r *SessionRepo) StoreRefresh(ctx context.Context, accountID uint32, tokenHash string, expires time.Time) error {
	db, err := r.stores.Handle(database.StoreLauncher)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO launcher_sessions (account_id, token_hash, expires_at) VALUES (?, ?, ?)",
		accountID, tokenHash, expires.UTC())
	if err != nil {
		return fmt.Errorf("%w: store refresh: %v", database.ErrStoreUnavailable, err)
	}
	return nil
}

// ConsumeRefresh looks up an active session by token hash and revokes
// it (refresh tokens rotate: each one is good for a single exchange).
// It returns the owning account id.
func (r *SessionRepo) ConsumeRefresh(ctx context.Context, tokenHash string) (uint32, error) {
	db, err := r.stores.Handle(database.StoreLauncher)
	if err != nil {
		return 0, err
	}

	var accountID uint32
	err = db.QueryRowContext(ctx,
		"SELECT account_id FROM launcher_sessions WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > NOW() LIMIT 1",
		tokenHash).Scan(&accountID)
	if err == sql.ErrNoRows {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: refresh lookup: %v", database.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx,
		"UPDATE launcher_sessions SET revoked_at = NOW() WHERE token_hash = ?",
		tokenHash); err != nil {
		return 0, fmt.Errorf("%w: revoke refresh: %v", database.ErrStoreUnavailable, err)
	}
	return accountID, nil
}
