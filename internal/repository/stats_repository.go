package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/ThunderCoreDev/Launcher-Pro/internal/database"
	"github.com/ThunderCoreDev/Launcher-Pro/internal/model"
)

// Race id lists used for the faction split. They cover every playable
// race up through Dragonflight; allied races land on the side of their
// parent faction.
const (
	allianceRaces = "1,3,4,7,11,22,25,29,30,32,34,37"
	hordeRaces    = "2,5,6,8,9,10,26,27,28,31,35,36"
)

// StatsRepo aggregates dashboard numbers across the characters and
// auth stores.
type StatsRepo struct {
	stores *database.Manager
	table  string
}

func NewStatsRepo(stores *database.Manager, charactersTable string) *StatsRepo {
	return &StatsRepo{stores: stores, table: charactersTable}
}

// ServerStats returns the online count, faction split and realm
// uptime. The online numbers require the characters store; uptime is
// best-effort from the auth store and is left at zero (with a log
// line) when that store is down, since the rest of the snapshot is
// still useful.
func (r *StatsRepo) ServerStats(ctx context.Context) (model.ServerStats, error) {
	var s model.ServerStats
	db, err := r.stores.Handle(database.StoreCharacters)
	if err != nil {
		return s, err
	}

	q := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE online = 1", r.table)
	if err := db.QueryRowContext(ctx, q).Scan(&s.OnlinePlayers); err != nil {
		return s, fmt.Errorf("%w: online count: %v", database.ErrStoreUnavailable, err)
	}

	q = fmt.Sprintf(
		"SELECT COALESCE(SUM(CASE WHEN race IN (%s) THEN 1 ELSE 0 END), 0), COALESCE(SUM(CASE WHEN race IN (%s) THEN 1 ELSE 0 END), 0) FROM %s WHERE online = 1",
		allianceRaces, hordeRaces, r.table)
	if err := db.QueryRowContext(ctx, q).Scan(&s.AllianceOnline, &s.HordeOnline); err != nil {
		return s, fmt.Errorf("%w: faction split: %v", database.ErrStoreUnavailable, err)
	}

	if authDB, err := r.stores.Handle(database.StoreAuth); err == nil {
		var uptimeSecs int
		err := authDB.QueryRowContext(ctx, "SELECT COALESCE(MAX(uptime), 0) FROM uptime").Scan(&uptimeSecs)
		if err != nil {
			log.Printf("stats: uptime query failed: %v", err)
		} else {
			s.UptimeHours = uptimeSecs / 3600
		}
	}

	return s, nil
}
