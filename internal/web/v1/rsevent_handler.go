package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/duynhne/rslist-service/internal/core/domain"
	logicv1 "github.com/duynhne/rslist-service/internal/logic/v1"
	"github.com/duynhne/rslist-service/middleware"
)

// RsEventHandler handles HTTP requests for the rs event resource.
type RsEventHandler struct {
	service *logicv1.RsEventService
}

func NewRsEventHandler(service *logicv1.RsEventService) *RsEventHandler {
	return &RsEventHandler{service: service}
}

// Find handles GET /rs?eventName=&id=
func (h *RsEventHandler) Find(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := queryInt64(c, "id")
	if !ok {
		return
	}
	eventName := queryString(c, "eventName")

	event, err := h.service.FindByParams(ctx, id, eventName)
	if err != nil {
		span.RecordError(err)
		writeServiceError(c, logger, err)
		return
	}
	if event == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, event)
}

// List handles GET /rs/list
func (h *RsEventHandler) List(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	events, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		writeServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Create handles POST /rs
func (h *RsEventHandler) Create(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.CreateRsEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid param"})
		return
	}

	id, err := h.service.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Warn("Rs event rejected", zap.String("event_name", req.EventName), zap.Error(err))
		writeServiceError(c, logger, err)
		return
	}

	logger.Info("Rs event created", zap.Int64("event_id", id), zap.String("event_name", req.EventName))
	c.Header("id", strconv.FormatInt(id, 10))
	c.Status(http.StatusCreated)
}

// Update handles PATCH /rs/:id
func (h *RsEventHandler) Update(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid param"})
		return
	}

	var req domain.UpdateRsEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid param"})
		return
	}

	if err := h.service.Update(ctx, id, req); err != nil {
		span.RecordError(err)
		writeServiceError(c, logger, err)
		return
	}

	logger.Info("Rs event updated", zap.Int64("event_id", id))
	c.Status(http.StatusOK)
}

// Delete handles DELETE /rs?eventName=&id=
func (h *RsEventHandler) Delete(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	id, ok := queryInt64(c, "id")
	if !ok {
		return
	}
	eventName := queryString(c, "eventName")

	if err := h.service.DeleteByParams(ctx, id, eventName); err != nil {
		span.RecordError(err)
		writeServiceError(c, logger, err)
		return
	}

	logger.Info("Rs event deleted")
	c.Status(http.StatusOK)
}
