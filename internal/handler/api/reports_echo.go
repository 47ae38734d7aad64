package api

import (
	"errors"
	"strconv"
	"time"

	models "StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportsEchoHandler exposes the report pipeline over HTTP.
type ReportsEchoHandler struct {
	logger  *xlogger.Logger
	reports *usecase.ReportUseCase
	store   domrepo.SignalStore // optional, backs the health check
}

func NewReportsEchoHandler(logger *xlogger.Logger, reports *usecase.ReportUseCase, store domrepo.SignalStore) *ReportsEchoHandler {
	return &ReportsEchoHandler{logger: logger, reports: reports, store: store}
}

func (h *ReportsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.POST("/reports", h.Generate)
	g.GET("/reports/:symbol", h.Latest)
	g.GET("/reports/:symbol/history", h.History)
}

// Generate runs the full pipeline on the facts in the request body.
func (h *ReportsEchoHandler) Generate(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.Generate(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("report usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Latest returns the cached report for a symbol, if one exists.
func (h *ReportsEchoHandler) Latest(c echo.Context) error {
	req := &models.ReportLookupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.reports.GetCached(c.Request().Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no report for %s", req.Symbol))
		}
		h.logger.Error("report lookup error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

// History returns stored signal rows for a symbol. Optional query params:
// from/to as RFC3339, limit as an integer.
func (h *ReportsEchoHandler) History(c echo.Context) error {
	req := &models.ReportLookupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	var from, to time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("from must be RFC3339"))
		}
		from = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("to must be RFC3339"))
		}
		to = t
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("limit must be a non-negative integer"))
		}
		limit = n
	}

	rows, err := h.reports.History(c.Request().Context(), req.Symbol, from, to, limit)
	if err != nil {
		h.logger.Error("report history error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Health reports process liveness and, when a store is wired, its
// reachability.
func (h *ReportsEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
		} else {
			status["store"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}
