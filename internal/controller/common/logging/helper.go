package logginghelper

import (
	log "github.com/sirupsen/logrus"

	"github.com/antonkor/logboard/internal/domain"
)

func LogCreated(record *domain.LogRecord) {
	log.WithFields(log.Fields{
		"id":      record.ID,
		"channel": record.Channel,
		"level":   record.Level,
	}).Info("Log record created")
}

func LogCreateError(record *domain.LogRecord, err error) {
	log.WithFields(log.Fields{
		"channel": record.Channel,
		"level":   record.Level,
		"error":   err,
	}).Error("Failed to create log record")
}

func LogAuthSuccess(email, ip string) {
	log.WithFields(log.Fields{
		"email": email,
		"ip":    ip,
	}).Info("Login succeeded")
}

// LogAuthFailure reports only the attempted email and source address;
// the reason stays out of the log line to match the generic response.
func LogAuthFailure(email, ip string) {
	log.WithFields(log.Fields{
		"email": email,
		"ip":    ip,
	}).Warn("Login failed")
}
