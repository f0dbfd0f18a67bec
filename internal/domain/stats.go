package domain

import "time"

type LevelCount struct {
	Level string `db:"level"`
	Count int64  `db:"count_logs"`
}

type ChannelCount struct {
	Channel string `db:"channel"`
	Count   int64  `db:"count_logs"`
}

// DailyCount is one calendar day with at least one record. Days with
// no records are absent, the series is sparse.
type DailyCount struct {
	Day   time.Time `db:"day"`
	Count int64     `db:"count_logs"`
}

// Statistics is the raw aggregation over a time window.
type Statistics struct {
	Total    int64
	Levels   []LevelCount
	Channels []ChannelCount
	Daily    []DailyCount
}

// DashboardStats is everything the dashboard endpoint reports.
// TodayLogs uses a trailing 24h window while the rest uses the
// [From, To] window; the two windows are independent on purpose.
type DashboardStats struct {
	From         time.Time
	To           time.Time
	TotalLogs    int64
	TodayLogs    int64
	ErrorRate    float64
	SystemHealth float64
	Levels       []LevelCount
	TopChannels  []ChannelCount
	Daily        []DailyCount
	GeneratedAt  time.Time
}

// AuthStats is the admin-only account overview.
type AuthStats struct {
	TotalUsers        int64
	ActiveUsers       int64
	AdminUsers        int64
	RecentLogins      int64
	NewUsersThisMonth int64
}
