package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
)

// AccountRepo reads credential records from the emulator's auth store
// and applies the post-login state updates. The physical table name is
// resolved from the expansion configuration at construction time
// because it differs per emulator variant (e.g. "account" on WotLK
// TrinityCore vs "battlenet_accounts" on MoP).
type AccountRepo struct {
	stores *database.Manager
	table  string
}

func NewAccountRepo(stores *database.Manager, table string) *AccountRepo {
	return &AccountRepo{stores: stores, table: table}
}

// AccountByUsername fetches a credential record by case-insensitive
// username. It returns sql.ErrNoRows when the account does not exist
// and wraps database.ErrStoreUnavailable when the auth store cannot be
// reached.
func (r *AccountRepo) AccountByUsername(ctx context.Context, username string) (model.Account, error) {
	var a model.Account
	db, err := r.stores.Handle(database.StoreAuth)
	if err != nil {
		return a, err
	}

	// The account table collates case-insensitively; normalizing here
	// keeps the behavior identical against stores that do not.
	username = strings.ToUpper(strings.TrimSpace(username))
	q := fmt.Sprintf(
		"SELECT id, username, salt, verifier, locked, online, last_login, last_ip FROM %s WHERE UPPER(username) = ? LIMIT 1",
		r.table)

	var (
		lastLogin sql.NullTime
		lastIP    sql.NullString
	)
	err = db.QueryRowContext(ctx, q, username).Scan(
		&a.ID, &a.Username, &a.Salt, &a.Verifier, &a.Locked, &a.Online, &lastLogin, &lastIP)
	if err == sql.ErrNoRows {
		return a, err
	}
	if err != nil {
		return a, fmt.Errorf("%w: query %s: %v", database.ErrStoreUnavailable, r.table, err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	a.LastIP = lastIP.String
	return a, nil
}

// MarkOnline records a successful authentication on the account row:
// online flag, last_login timestamp and the source address.
func (r *AccountRepo) MarkOnline(ctx context.Context, accountID uint32, ip string) error {
	db, err := r.stores.Handle(database.StoreAuth)
	if err != nil {
		return err
	}
	q := fmt.Sprintf("UPDATE %s SET online = 1, last_login = NOW(), last_ip = ? WHERE id = ?", r.table)
	if _, err := db.ExecContext(ctx, q, ip, accountID); err != nil {
		return fmt.Errorf("%w: mark online: %v", database.ErrStoreUnavailable, err)
	}
	return nil
}

// GMLevel returns the account's highest GM level from account_access,
// or 0 when the account has no GM access rows.
func (r *AccountRepo) GMLevel(ctx context.Context, accountID uint32) (uint8, error) {
	db, err := r.stores.Handle(database.StoreAuth)
	if err != nil {
		return 0, err
	}
	var level uint8
	err = db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(gmlevel), 0) FROM account_access WHERE id = ?",
		accountID).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("%w: gm level: %v", database.ErrStoreUnavailable, err)
	}
	return level, nil
}
