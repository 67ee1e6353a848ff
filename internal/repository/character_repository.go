package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
)

// CharacterRepo reads character rows from the emulator's characters
// store and performs the unstuck reposition. Everything except the
// position fields is read-only from the launcher's perspective: guid
// and account ownership are never written here.
type CharacterRepo struct {
	stores *database.Manager
	table  string
}

func NewCharacterRepo(stores *database.Manager, table string) *CharacterRepo {
	return &CharacterRepo{stores: stores, table: table}
}

// ListByAccount returns the account's characters as summaries. An
// account with no characters yields an empty slice and a nil error; an
// unreachable store yields an error wrapping
// database.ErrStoreUnavailable so the two cases stay distinguishable.
func (r *CharacterRepo) ListByAccount(ctx context.Context, accountID uint32) ([]model.CharacterSummary, error) {
	db, err := r.stores.Handle(database.StoreCharacters)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(
		"SELECT guid, account, name, race, class, level, gender, map, zone, position_x, position_y, position_z, online, totaltime FROM %s WHERE account = ?",
		r.table)
	rows, err := db.QueryContext(ctx, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: list characters: %v", database.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := []model.CharacterSummary{}
	for rows.Next() {
		var c model.CharacterSummary
		if err := rows.Scan(
			&c.GUID, &c.AccountID, &c.Name, &c.Race, &c.Class, &c.Level, &c.Gender,
			&c.Position.MapID, &c.Position.ZoneID, &c.Position.X, &c.Position.Y, &c.Position.Z,
			&c.Online, &c.PlayTimeSeconds,
		); err != nil {
			return nil, fmt.Errorf("%w: scan character: %v", database.ErrStoreUnavailable, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list characters: %v", database.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Reposition moves a character to its home-bind location, or to the
// given fallback when no home-bind row exists, and clears any taxi
// path. The whole operation runs in one transaction so the position,
// map, zone and taxi fields either all change or none do.
//
// ownerID limits the move to characters of that account; pass 0 to
// skip the ownership check (GM path).
func (r *CharacterRepo) Reposition(ctx context.Context, guid uint64, ownerID uint32, fallback model.Position) error {
	db, err := r.stores.Handle(database.StoreCharacters)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin reposition: %v", database.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	// Ownership and existence check first, so a foreign guid fails with
	// ErrForbidden rather than silently updating nothing.
	var owner uint32
	q := fmt.Sprintf("SELECT account FROM %s WHERE guid = ?", r.table)
	err = tx.QueryRowContext(ctx, q, guid).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrCharacterNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: reposition lookup: %v", database.ErrStoreUnavailable, err)
	}
	if ownerID != 0 && owner != ownerID {
		return ErrForbidden
	}

	// Home-bind wins; the fallback is the deployment's configured safe
	// location.
	pos := fallback
	err = tx.QueryRowContext(ctx,
		"SELECT mapId, zoneId, posX, posY, posZ FROM character_homebind WHERE guid = ?",
		guid).Scan(&pos.MapID, &pos.ZoneID, &pos.X, &pos.Y, &pos.Z)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("%w: homebind lookup: %v", database.ErrStoreUnavailable, err)
	}

	upd := fmt.Sprintf(
		"UPDATE %s SET position_x = ?, position_y = ?, position_z = ?, map = ?, zone = ?, taximask = '0 0' WHERE guid = ?",
		r.table)
	if _, err := tx.ExecContext(ctx, upd, pos.X, pos.Y, pos.Z, pos.MapID, pos.ZoneID, guid); err != nil {
		return fmt.Errorf("%w: reposition update: %v", database.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: reposition commit: %v", database.ErrStoreUnavailable, err)
	}
	return nil
}
