package v1

import (
	"time"

	"github.com/antonkor/logboard/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

type logResponse struct {
	ID        int64          `json:"id"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	Channel   string         `json:"channel"`
	Source    string         `json:"source,omitempty"`
	CreatedAt string         `json:"createdAt"`
	IPAddress string         `json:"ipAddress,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
	UserID    *int64         `json:"userId,omitempty"`
}

func toLogResponse(record domain.LogRecord) logResponse {
	return logResponse{
		ID:        record.ID,
		Level:     record.Level,
		Message:   record.Message,
		Context:   record.Context,
		Channel:   record.Channel,
		Source:    record.Source,
		CreatedAt: record.CreatedAt.Format(timeLayout),
		IPAddress: record.IPAddress,
		UserAgent: record.UserAgent,
		Extra:     record.Extra,
		UserID:    record.UserID,
	}
}

type fileLogResponse struct {
	ID         string `json:"id"`
	Datetime   string `json:"datetime"`
	Level      string `json:"level"`
	Channel    string `json:"channel"`
	Message    string `json:"message"`
	Context    string `json:"context,omitempty"`
	File       string `json:"file"`
	LineNumber int    `json:"lineNumber"`
	Source     string `json:"source"`
}

func toFileLogResponse(record domain.FileLogRecord) fileLogResponse {
	return fileLogResponse{
		ID:         record.ID,
		Datetime:   record.Timestamp.Format(timeLayout),
		Level:      record.Level,
		Channel:    record.Channel,
		Message:    record.Message,
		Context:    record.Context,
		File:       record.File,
		LineNumber: record.LineNumber,
		Source:     "file",
	}
}

type userResponse struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	IsActive    bool     `json:"isActive"`
	Name        string   `json:"name,omitempty"`
	Department  string   `json:"department,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	LastLoginAt *string  `json:"lastLoginAt"`
}

func toUserResponse(user domain.User) userResponse {
	resp := userResponse{
		ID:         user.ID,
		Email:      user.Email,
		Roles:      user.Roles,
		IsActive:   user.IsActive,
		Name:       user.Name,
		Department: user.Department,
		Phone:      user.Phone,
		CreatedAt:  user.CreatedAt.Format(timeLayout),
	}
	if user.LastLoginAt != nil {
		formatted := user.LastLoginAt.Format(timeLayout)
		resp.LastLoginAt = &formatted
	}
	return resp
}

type pagination struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int64 `json:"totalPages"`
}

func newPagination(page, limit int, total int64) pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return pagination{
		CurrentPage:  page,
		ItemsPerPage: limit,
		TotalItems:   total,
		TotalPages:   totalPages,
	}
}

func formatTrendTime(t time.Time) string {
	return t.Format("02/01")
}
