package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	logginghelper "github.com/antonkor/logboard/internal/controller/common/logging"
	"github.com/antonkor/logboard/internal/controller/http/validators"
	"github.com/antonkor/logboard/internal/domain"
	"github.com/antonkor/logboard/internal/repo/repotypes"
	"github.com/antonkor/logboard/internal/service"
)

type logRoutes struct {
	logService   service.Log
	filesService service.Files
}

func newLogRoutes(g *echo.Group, ls service.Log, fs service.Files, admin echo.MiddlewareFunc) {
	r := &logRoutes{logService: ls, filesService: fs}

	g.GET("/logs", r.list)
	g.POST("/logs", r.create)
	g.GET("/logs/channels", r.channels)
	g.GET("/logs/sources", r.sources)
	g.GET("/logs/files", r.files)
	g.DELETE("/logs", r.bulkDelete, admin)
	g.POST("/logs/archive", r.archive, admin)
	g.GET("/users/:id/logs", r.byUser, admin)
}

type logListResponse struct {
	Data       []logResponse `json:"data"`
	Pagination pagination    `json:"pagination"`
}

func (r *logRoutes) list(c echo.Context) error {
	query, err := validators.ParseLogQuery(c.QueryParam)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}

	if query.Export {
		return r.export(c, query.Filter)
	}

	logs, total, err := r.logService.FindWithFilters(c.Request().Context(), query.Filter, query.Page, query.Limit)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	data := make([]logResponse, 0, len(logs))
	for _, record := range logs {
		data = append(data, toLogResponse(record))
	}

	return c.JSON(http.StatusOK, logListResponse{
		Data:       data,
		Pagination: newPagination(query.Page, query.Limit, total),
	})
}

// export streams every matching record; records are written to the
// response one at a time so the full result set is never held in
// memory.
func (r *logRoutes) export(c echo.Context, filter repotypes.LogFilter) error {
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	resp.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(resp, `{"data":[`); err != nil {
		return err
	}

	enc := json.NewEncoder(resp)
	var count int64

	err := r.logService.Export(c.Request().Context(), filter, func(record domain.LogRecord) error {
		if count > 0 {
			if _, err := io.WriteString(resp, ","); err != nil {
				return err
			}
		}
		count++
		return enc.Encode(toLogResponse(record))
	})
	if err != nil {
		// headers are already sent, the best we can do is abort the body
		log.WithField("error", err).Error("Log export aborted")
		return err
	}

	tail := logListResponse{Pagination: pagination{
		CurrentPage:  1,
		ItemsPerPage: int(count),
		TotalItems:   count,
		TotalPages:   1,
	}}
	tailPagination, _ := json.Marshal(tail.Pagination)

	_, err = io.WriteString(resp, `],"pagination":`+string(tailPagination)+"}")
	return err
}

type createLogRequest struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Context map[string]any `json:"context"`
	Channel string         `json:"channel"`
	Source  string         `json:"source"`
	Extra   map[string]any `json:"extra"`
}

func (r *logRoutes) create(c echo.Context) error {
	var req createLogRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	principal := currentPrincipal(c)
	var userID *int64
	if principal.UserID > 0 {
		userID = &principal.UserID
	}

	record, err := r.logService.CreateLog(c.Request().Context(), service.CreateLogInput{
		Level:     req.Level,
		Message:   req.Message,
		Context:   req.Context,
		Channel:   req.Channel,
		Source:    req.Source,
		Extra:     req.Extra,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		UserID:    userID,
	})
	if err != nil {
		logginghelper.LogCreateError(&domain.LogRecord{Level: req.Level, Channel: req.Channel}, err)
		return serviceErrorResponse(c, err)
	}

	logginghelper.LogCreated(&record)
	return c.JSON(http.StatusCreated, toLogResponse(record))
}

func (r *logRoutes) channels(c echo.Context) error {
	channels, err := r.logService.Channels(c.Request().Context())
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, channels)
}

func (r *logRoutes) sources(c echo.Context) error {
	sources, err := r.logService.Sources(c.Request().Context())
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, sources)
}

func (r *logRoutes) files(c echo.Context) error {
	dateFrom, dateTo, err := validators.ParseDateRange(c.QueryParam("dateFrom"), c.QueryParam("dateTo"))
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}

	records, err := r.filesService.ReadLogs(c.Request().Context(), service.FileFilter{
		Level:    c.QueryParam("level"),
		Search:   c.QueryParam("search"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	data := make([]fileLogResponse, 0, len(records))
	for _, record := range records {
		data = append(data, toFileLogResponse(record))
	}
	return c.JSON(http.StatusOK, map[string]any{"data": data})
}

func (r *logRoutes) byUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid user id")
	}

	limit := validators.DefaultPageSize
	if parsed, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = validators.ClampPageSize(parsed)
	}

	logs, err := r.logService.FindByUser(c.Request().Context(), id, limit)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	data := make([]logResponse, 0, len(logs))
	for _, record := range logs {
		data = append(data, toLogResponse(record))
	}
	return c.JSON(http.StatusOK, map[string]any{"data": data})
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (r *logRoutes) bulkDelete(c echo.Context) error {
	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return errorResponse(c, http.StatusBadRequest, "ids must not be empty")
	}

	deleted, err := r.logService.DeleteByIDs(c.Request().Context(), req.IDs)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

type archiveRequest struct {
	Days int `json:"days"`
}

const defaultArchiveDays = 90

func (r *logRoutes) archive(c echo.Context) error {
	var req archiveRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Days <= 0 {
		req.Days = defaultArchiveDays
	}

	deleted, err := r.logService.ArchiveOlderThan(c.Request().Context(), req.Days)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}
