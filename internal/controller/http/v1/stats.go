package v1

import (
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/service"
)

type statsRoutes struct {
	statsService service.Stats
}

func newStatsRoutes(g *echo.Group, ss service.Stats) {
	r := &statsRoutes{statsService: ss}

	g.GET("/stats", r.dashboard)
}

type chartPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

type trendPoint struct {
	Time string `json:"time"`
	Logs int64  `json:"logs"`
}

type channelPoint struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type dashboardResponse struct {
	TotalLogs     int64          `json:"totalLogs"`
	TodayLogs     int64          `json:"todayLogs"`
	ErrorRate     float64        `json:"errorRate"`
	SystemHealth  float64        `json:"systemHealth"`
	LogLevelData  []chartPoint   `json:"logLevelData"`
	LogTrendData  []trendPoint   `json:"logTrendData"`
	TopChannels   []channelPoint `json:"topChannels"`
	SystemMetrics []chartPoint   `json:"systemMetrics"`
	LastUpdate    string         `json:"lastUpdate"`
}

func (r *statsRoutes) dashboard(c echo.Context) error {
	stats, err := r.statsService.Dashboard(c.Request().Context())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	levelData := make([]chartPoint, 0, len(stats.Levels))
	for _, lc := range stats.Levels {
		levelData = append(levelData, chartPoint{
			Name:  strings.ToUpper(lc.Level),
			Value: lc.Count,
			Color: levelColor(lc.Level),
		})
	}

	channelData := make([]channelPoint, 0, len(stats.TopChannels))
	for _, cc := range stats.TopChannels {
		channelData = append(channelData, channelPoint{Name: cc.Channel, Value: cc.Count})
	}

	trendData := make([]trendPoint, 0, len(stats.Daily))
	for _, dc := range stats.Daily {
		trendData = append(trendData, trendPoint{
			Time: formatTrendTime(dc.Day),
			Logs: dc.Count,
		})
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TotalLogs:     stats.TotalLogs,
		TodayLogs:     stats.TodayLogs,
		ErrorRate:     stats.ErrorRate,
		SystemHealth:  stats.SystemHealth,
		LogLevelData:  levelData,
		LogTrendData:  trendData,
		TopChannels:   channelData,
		SystemMetrics: placeholderSystemMetrics(),
		LastUpdate:    stats.GeneratedAt.Format(time.RFC3339),
	})
}

func levelColor(level string) string {
	switch domain.NormalizeLevel(level) {
	case domain.LevelError, domain.LevelCritical:
		return "#f44336"
	case domain.LevelWarning:
		return "#ff9800"
	case domain.LevelInfo:
		return "#2196f3"
	case domain.LevelDebug:
		return "#9e9e9e"
	default:
		return "#90a4ae"
	}
}

// placeholderSystemMetrics mirrors the dashboard's fixture gauges;
// host metrics are not collected by this service.
func placeholderSystemMetrics() []chartPoint {
	return []chartPoint{
		{Name: "CPU", Value: int64(30 + rand.Intn(51)), Color: "#2196f3"},
		{Name: "Memory", Value: int64(40 + rand.Intn(51)), Color: "#4caf50"},
		{Name: "Disk", Value: int64(50 + rand.Intn(46)), Color: "#ff9800"},
	}
}
