package report

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-nippo/internal/principal"
	"go-nippo/internal/shared/apperror"
	"go-nippo/internal/shared/contextutil"
	"go-nippo/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	svc    Service
	rdb    *redis.Client
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{svc: service, logger: l}
}

// NewHandlerWithRedis also caches successful create responses so retried
// submissions with the same Idempotency-Key replay instead of re-executing.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Report ID must be a number", nil)
		return 0, false
	}
	return uint(id), true
}

// List returns the reports visible to the caller; scoping by role happens
// in the service, not here.
func (h *Handler) List(c *gin.Context) {
	actor, err := principal.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.svc.GetForActor(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]ReportResponse, 0, len(resp))
		for _, r := range resp {
			if strings.Contains(strings.ToLower(r.Title), q) || strings.Contains(strings.ToLower(r.EmployeeName), q) {
				filtered = append(filtered, r)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "report_date")))
	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "desc")))
	if sortDir != "asc" {
		sortDir = "desc"
	}
	sort.Slice(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "title":
			less = strings.ToLower(resp[i].Title) < strings.ToLower(resp[j].Title)
		case "employee_code":
			less = resp[i].EmployeeCode < resp[j].EmployeeCode
		default:
			less = resp[i].ReportDate < resp[j].ReportDate
		}
		if sortDir == "desc" {
			return !less
		}
		return less
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// CheckDate lets the form warn about a duplicate date before submission.
func (h *Handler) CheckDate(c *gin.Context) {
	actor, err := principal.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	reportDate := c.Query("report_date")
	if reportDate == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "report_date is required", nil)
		return
	}

	if err := h.svc.CheckDuplicateDate(c.Request.Context(), reportDate, actor.EmployeeCode); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"available": true}, nil)
}

func (h *Handler) Create(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	cacheKey := c.GetString("idempotency_cache_key")

	// Release the in-flight lock whatever the outcome; a failed create must
	// not block a retry for the lock TTL.
	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	actor, err := principal.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	resp, err := h.svc.Create(ctx, actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
				h.logger.Warn("idempotency cache set failed", zap.Error(err))
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	resp, err := h.svc.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)

	if err := h.svc.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
