package model

import "time"

// LauncherProfile mirrors a launcher_users row: per-account launcher
// metadata created lazily on first successful login and advanced by the
// daily upsert afterwards. AccountID shares the identifier space of the
// auth store's account table (1:1).
type LauncherProfile struct {
	AccountID        uint32     `json:"account_id"`
	Username         string     `json:"username"`
	Level            uint32     `json:"level"`
	Experience       uint64     `json:"experience"`
	DailyLoginStreak uint32     `json:"daily_login_streak"`
	LastLoginDate    *time.Time `json:"last_login_date"`
	TotalLoginDays   uint32     `json:"total_login_days"`
}

// ServerStats is the aggregate snapshot shown on the launcher
// dashboard: who is online, the faction split, and realm uptime.
type ServerStats struct {
	OnlinePlayers  int `json:"online_players"`
	AllianceOnline int `json:"alliance_online"`
	HordeOnline    int `json:"horde_online"`
	UptimeHours    int `json:"uptime_hours"`
}
