package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
)

var testFallback = model.Position{MapID: 0, ZoneID: 1519, X: -8949.95, Y: -132.493, Z: 83.5312}

func newCharRepo(t *testing.T) (*CharacterRepo, sqlmock.Sqlmock) {
	t.Helper()
	m, mock := newStoreMock(t, database.StoreCharacters)
	return NewCharacterRepo(m, "characters"), mock
}

func TestListByAccount(t *testing.T) {
	repo, mock := newCharRepo(t)

	rows := sqlmock.NewRows([]string{
		"guid", "account", "name", "race", "class", "level", "gender",
		"map", "zone", "position_x", "position_y", "position_z", "online", "totaltime",
	}).
		AddRow(100, 7, "Aldric", 1, 2, 80, 0, 0, 1519, -8949.95, -132.493, 83.5312, true, 360000).
		AddRow(101, 7, "Morwen", 5, 9, 68, 1, 1, 1637, 1629.36, -4373.39, 31.2564, false, 7200)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT guid, account, name, race, class, level, gender, map, zone, position_x, position_y, position_z, online, totaltime FROM characters WHERE account = ?")).
		WithArgs(uint32(7)).
		WillReturnRows(rows)

	chars, err := repo.ListByAccount(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, uint64(100), chars[0].GUID)
	assert.Equal(t, "Aldric", chars[0].Name)
	assert.Equal(t, int32(1519), chars[0].Position.ZoneID)
	assert.True(t, chars[0].Online)
	assert.Equal(t, uint32(360000), chars[0].PlayTimeSeconds)
	assert.Equal(t, "Morwen", chars[1].Name)
}

func TestListByAccountEmpty(t *testing.T) {
	repo, mock := newCharRepo(t)

	mock.ExpectQuery("SELECT .+ FROM characters WHERE account").
		WithArgs(uint32(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"guid", "account", "name", "race", "class", "level", "gender",
			"map", "zone", "position_x", "position_y", "position_z", "online", "totaltime",
		}))

	chars, err := repo.ListByAccount(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, chars)
	assert.Empty(t, chars, "zero characters is an empty slice, not an error")
}

func TestListByAccountStoreUnavailable(t *testing.T) {
	repo := NewCharacterRepo(database.NewManager(), "characters")

	_, err := repo.ListByAccount(context.Background(), 7)
	assert.ErrorIs(t, err, database.ErrStoreUnavailable,
		"an unreachable store must stay distinguishable from zero characters")
}

func TestRepositionUsesHomebind(t *testing.T) {
	repo, mock := newCharRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT account FROM characters WHERE guid = ?")).
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"account"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT mapId, zoneId, posX, posY, posZ FROM character_homebind WHERE guid = ?")).
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"mapId", "zoneId", "posX", "posY", "posZ"}).
			AddRow(1, 1637, 1629.36, -4373.39, 31.2564))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE characters SET position_x = ?, position_y = ?, position_z = ?, map = ?, zone = ?, taximask = '0 0' WHERE guid = ?")).
		WithArgs(float32(1629.36), float32(-4373.39), float32(31.2564), int32(1), int32(1637), uint64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Reposition(context.Background(), 100, 7, testFallback)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositionFallsBackWithoutHomebind(t *testing.T) {
	repo, mock := newCharRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT account FROM characters WHERE guid = ?")).
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"account"}).AddRow(7))
	mock.ExpectQuery("SELECT .+ FROM character_homebind").
		WithArgs(uint64(100)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE characters SET position_x").
		WithArgs(testFallback.X, testFallback.Y, testFallback.Z, testFallback.MapID, testFallback.ZoneID, uint64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Reposition(context.Background(), 100, 7, testFallback)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositionUnknownCharacter(t *testing.T) {
	repo, mock := newCharRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT account FROM characters").
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Reposition(context.Background(), 999, 7, testFallback)
	assert.ErrorIs(t, err, ErrCharacterNotFound)
}

func TestRepositionForeignCharacter(t *testing.T) {
	repo, mock := newCharRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT account FROM characters").
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"account"}).AddRow(42))
	mock.ExpectRollback()

	err := repo.Reposition(context.Background(), 100, 7, testFallback)
	assert.ErrorIs(t, err, ErrForbidden,
		"a character of another account must never be moved")
}

func TestRepositionGMPathSkipsOwnershipCheck(t *testing.T) {
	repo, mock := newCharRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT account FROM characters").
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"account"}).AddRow(42))
	mock.ExpectQuery("SELECT .+ FROM character_homebind").
		WithArgs(uint64(100)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE characters SET position_x").
		WithArgs(testFallback.X, testFallback.Y, testFallback.Z, testFallback.MapID, testFallback.ZoneID, uint64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Reposition(context.Background(), 100, 0, testFallback)
	require.NoError(t, err)
}

func TestRepositionRollsBackOnWriteFailure(t *testing.T) {
	repo, mock := newCharRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT account FROM characters").
		WithArgs(uint64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"account"}).AddRow(7))
	mock.ExpectQuery("SELECT .+ FROM character_homebind").
		WithArgs(uint64(100)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE characters SET position_x").
		WillReturnError(errors.New("server has gone away"))
	mock.ExpectRollback()

	err := repo.Reposition(context.Background(), 100, 7, testFallback)
	assert.ErrorIs(t, err, database.ErrStoreUnavailable,
		"a failed write must roll the transaction back, leaving the row untouched")
	assert.NoError(t, mock.ExpectationsWereMet())
}
