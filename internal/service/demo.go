package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/antonkor/logboard/internal/domain"
)

const demoLogCount = 100

var demoChannels = []string{"app", "security", "request", "doctrine", "cache"}

var demoMessages = map[string][]string{
	domain.LevelDebug: {
		"Cache hit for key: user_profile_123",
		"Database query executed successfully",
		"Memory usage: 45MB",
		"Processing user request for endpoint /api/logs",
	},
	domain.LevelInfo: {
		"User logged in successfully",
		"New user registered: john.doe@example.com",
		"Email sent to user@example.com",
		"File uploaded: document.pdf",
		"Configuration updated successfully",
	},
	domain.LevelWarning: {
		"Deprecated function used in UserController",
		"High memory usage detected: 85%",
		"Slow query detected: 2.5s",
		"Rate limit approaching for IP 192.168.1.100",
	},
	domain.LevelError: {
		"Failed to connect to database",
		"Invalid JWT token provided",
		"File not found: /uploads/missing.jpg",
		"Permission denied for user action",
		"Validation failed: email format invalid",
	},
	domain.LevelCritical: {
		"Database connection lost",
		"Disk space critically low: 2% remaining",
		"Security breach detected",
		"System overload: CPU usage 95%",
	},
}

var demoContexts = map[string]string{
	domain.LevelDebug:    `{"memory_usage":"45MB","execution_time":"0.025s"}`,
	domain.LevelInfo:     `{"user_id":123,"ip":"192.168.1.100"}`,
	domain.LevelWarning:  `{"threshold":"80%","current":"85%"}`,
	domain.LevelError:    `{"error_code":"E001","file":"UserController.php","line":45}`,
	domain.LevelCritical: `{"alert_sent":true,"escalation_level":3}`,
}

// generateDemoLogs produces placeholder records so the dashboard has
// data to render. It is never a data source of record and only runs
// when demo mode is explicitly enabled.
func (s *FileReaderService) generateDemoLogs() []domain.FileLogRecord {
	rng := rand.New(rand.NewSource(s.now().UnixNano()))
	now := s.now()

	records := make([]domain.FileLogRecord, 0, demoLogCount)
	for i := 0; i < demoLogCount; i++ {
		level := domain.Levels[rng.Intn(len(domain.Levels))]
		channel := demoChannels[rng.Intn(len(demoChannels))]
		messages := demoMessages[level]
		message := messages[rng.Intn(len(messages))]

		// at most 6d23h59m back, the full set stays inside 7 days
		timestamp := now.
			AddDate(0, 0, -rng.Intn(7)).
			Add(-time.Duration(rng.Intn(24)) * time.Hour).
			Add(-time.Duration(rng.Intn(60)) * time.Minute)

		records = append(records, domain.FileLogRecord{
			ID:         fmt.Sprintf("demo_%d", i+1),
			Timestamp:  timestamp,
			Level:      level,
			Channel:    channel,
			Message:    message,
			Context:    demoContexts[level],
			File:       "demo.log",
			LineNumber: i + 1,
			Raw: fmt.Sprintf("[%s] %s.%s: %s",
				timestamp.Format("2006-01-02 15:04:05"),
				channel,
				strings.ToLower(level),
				message,
			),
		})
	}

	return records
}
