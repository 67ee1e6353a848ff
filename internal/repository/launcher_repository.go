package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
)

// LauncherRepo owns the launcher_users table in the launcher store:
// per-account metadata created lazily on first login and advanced by
// the daily upsert afterwards.
type LauncherRepo struct {
	stores *database.Manager
}

func NewLauncherRepo(stores *database.Manager) *LauncherRepo {
	return &LauncherRepo{stores: stores}
}

// upsertLoginQuery records a login. The IF() guards make the statement
// idempotent per calendar day: re-authenticating on a day that is
// already recorded leaves total_login_days and daily_login_streak
// untouched, a login on the following day extends the streak, and a
// login after a gap resets the streak to 1. last_login_date must be
// assigned last — MySQL evaluates ON DUPLICATE KEY UPDATE assignments
// left to right, and the earlier IF()s read the previous value.
const upsertLoginQuery = `
INSERT INTO launcher_users
  (account_id, username, level, experience, daily_login_streak, last_login_date, total_login_days)
VALUES (?, ?, 1, 0, 1, CURDATE(), 1)
ON DUPLICATE KEY UPDATE
  username = VALUES(username),
  daily_login_streak = IF(last_login_date = CURDATE(), daily_login_streak,
                          IF(last_login_date = CURDATE() - INTERVAL 1 DAY, daily_login_streak + 1, 1)),
  total_login_days = IF(last_login_date = CURDATE(), total_login_days, total_login_days + 1),
  last_login_date = CURDATE()`

// RecordLogin upserts the account's launcher metadata record for
// today. The username is a denormalized copy refreshed on every login.
func (r *LauncherRepo) RecordLogin(ctx context.Context, accountID uint32, username string) error {
	db, err := r.stores.Handle(database.StoreLauncher)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, upsertLoginQuery, accountID, username); err != nil {
		return fmt.Errorf("%w: record login: %v", database.ErrStoreUnavailable, err)
	}
	return nil
}

// ProfileByAccount returns the launcher metadata record, or
// ErrProfileNotFound when the account has never logged in through the
// launcher.
func (r *LauncherRepo) ProfileByAccount(ctx context.Context, accountID uint32) (model.LauncherProfile, error) {
	var p model.LauncherProfile
	db, err := r.stores.Handle(database.StoreLauncher)
	if err != nil {
		return p, err
	}

	var lastLogin sql.NullTime
	err = db.QueryRowContext(ctx,
		"SELECT account_id, username, level, experience, daily_login_streak, last_login_date, total_login_days FROM launcher_users WHERE account_id = ? LIMIT 1",
		accountID).Scan(
		&p.AccountID, &p.Username, &p.Level, &p.Experience, &p.DailyLoginStreak, &lastLogin, &p.TotalLoginDays)
	if err == sql.ErrNoRows {
		return p, ErrProfileNotFound
	}
	if err != nil {
		return p, fmt.Errorf("%w: profile query: %v", database.ErrStoreUnavailable, err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		p.LastLoginDate = &t
	}
	return p, nil
}

// CreateSchema creates the launcher store's tables if they are absent.
// The auth and characters schemas belong to the emulator and are never
// created or altered from here.
func (r *LauncherRepo) CreateSchema(ctx context.Context) error {
	db, err := r.stores.Handle(database.StoreLauncher)
	if err != nil {
		return err
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS launcher_users (
			id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			account_id INT UNSIGNED NOT NULL UNIQUE,
			username VARCHAR(255) NOT NULL,
			avatar_url VARCHAR(500),
			level INT UNSIGNED DEFAULT 1,
			experience BIGINT UNSIGNED DEFAULT 0,
			daily_login_streak INT UNSIGNED DEFAULT 0,
			last_login_date DATE,
			total_login_days INT UNSIGNED DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS launcher_sessions (
			id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			account_id INT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL UNIQUE,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_sessions_account (account_id)
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("%w: create schema: %v", database.ErrStoreUnavailable, err)
		}
	}
	return nil
}
