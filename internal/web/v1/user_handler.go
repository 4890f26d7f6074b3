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

// UserHandler handles HTTP requests for the user resource.
type UserHandler struct {
	service *logicv1.UserService
}

func NewUserHandler(service *logicv1.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Find handles GET /user?username=&id=
func (h *UserHandler) Find(c *gin.Context) {
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
	username := queryString(c, "username")

	user, err := h.service.FindByParams(ctx, id, username)
	if err != nil {
		span.RecordError(err)
		writeServiceError(c, logger, err)
		return
	}
	if user == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List handles GET /user/list?pageSize=&pageIndex=
func (h *UserHandler) List(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	pageSize := queryIntDefault(c, "pageSize", 10)
	pageIndex := queryIntDefault(c, "pageIndex", 1)

	users, err := h.service.List(ctx, pageSize, pageIndex)
	if err != nil {
		span.RecordError(err)
		writeServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create handles POST /user
func (h *UserHandler) Create(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user"})
		return
	}

	id, err := h.service.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		logger.Warn("User registration rejected", zap.String("username", req.Username), zap.Error(err))
		writeServiceError(c, logger, err)
		return
	}

	logger.Info("User registered", zap.Int64("user_id", id), zap.String("username", req.Username))
	c.Header("id", strconv.FormatInt(id, 10))
	c.Status(http.StatusCreated)
}

// Delete handles DELETE /user?username=&id=
func (h *UserHandler) Delete(c *gin.Context) {
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
	username := queryString(c, "username")

	if err := h.service.DeleteByParams(ctx, id, username); err != nil {
		span.RecordError(err)
		writeServiceError(c, logger, err)
		return
	}

	logger.Info("User deleted")
	c.Status(http.StatusOK)
}
