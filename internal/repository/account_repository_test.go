package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
)

func newAccountRepo(t *testing.T) (*AccountRepo, sqlmock.Sqlmock) {
	t.Helper()
	m, mock := newStoreMock(t, database.StoreAuth)
	return NewAccountRepo(m, "account"), mock
}

func TestAccountByUsername(t *testing.T) {
	repo, mock := newAccountRepo(t)

	lastLogin := time.Date(2024, 3, 8, 21, 4, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "username", "salt", "verifier", "locked", "online", "last_login", "last_ip",
	}).AddRow(7, "THUNDER", "AB12", "deadbeef", false, false, lastLogin, "10.0.0.4")

	// The lookup is normalized: whatever casing the client sent, the
	// bound parameter is upper-cased.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, salt, verifier, locked, online, last_login, last_ip FROM account WHERE UPPER(username) = ? LIMIT 1")).
		WithArgs("THUNDER").
		WillReturnRows(rows)

	a, err := repo.AccountByUsername(context.Background(), "  thunder ")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), a.ID)
	assert.Equal(t, "THUNDER", a.Username)
	assert.Equal(t, "AB12", a.Salt)
	assert.Equal(t, "deadbeef", a.Verifier)
	require.NotNil(t, a.LastLogin)
	assert.Equal(t, lastLogin, *a.LastLogin)
	assert.Equal(t, "10.0.0.4", a.LastIP)
}

func TestAccountByUsernameNullColumns(t *testing.T) {
	repo, mock := newAccountRepo(t)

	// A freshly created account has never logged in: last_login and
	// last_ip are NULL.
	rows := sqlmock.NewRows([]string{
		"id", "username", "salt", "verifier", "locked", "online", "last_login", "last_ip",
	}).AddRow(8, "NEWBIE", "CD34", "cafebabe", false, false, nil, nil)

	mock.ExpectQuery("SELECT .+ FROM account WHERE").
		WithArgs("NEWBIE").
		WillReturnRows(rows)

	a, err := repo.AccountByUsername(context.Background(), "newbie")
	require.NoError(t, err)
	assert.Nil(t, a.LastLogin)
	assert.Empty(t, a.LastIP)
}

func TestAccountByUsernameNotFound(t *testing.T) {
	repo, mock := newAccountRepo(t)

	mock.ExpectQuery("SELECT .+ FROM account WHERE").
		WithArgs("NOBODY").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.AccountByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows, "a missing account passes sql.ErrNoRows through unwrapped")
}

func TestAccountByUsernameStoreDown(t *testing.T) {
	repo, mock := newAccountRepo(t)

	mock.ExpectQuery("SELECT .+ FROM account WHERE").
		WithArgs("THUNDER").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.AccountByUsername(context.Background(), "thunder")
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
}

func TestMarkOnline(t *testing.T) {
	repo, mock := newAccountRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE account SET online = 1, last_login = NOW(), last_ip = ? WHERE id = ?")).
		WithArgs("10.0.0.4", uint32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkOnline(context.Background(), 7, "10.0.0.4"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGMLevel(t *testing.T) {
	repo, mock := newAccountRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(gmlevel), 0) FROM account_access WHERE id = ?")).
		WithArgs(uint32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"gmlevel"}).AddRow(3))

	level, err := repo.GMLevel(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), level)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint32(8)).
		WillReturnRows(sqlmock.NewRows([]string{"gmlevel"}).AddRow(0))

	level, err = repo.GMLevel(context.Background(), 8)
	require.NoError(t, err)
	assert.Zero(t, level)
}
