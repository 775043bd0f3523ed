package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const loggerKey = "logger"

// Register mounts the contact routes on r.
//
// The admin list and delete routes carry no authentication, matching the
// deployed site. Put them behind an authenticating proxy when exposing them.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group(basePath)
	g.Use(h.requestLogger())
	g.POST("", h.ginCreate)
	g.GET("/admin", h.ginList)
	g.DELETE("/:id", h.ginDelete)
}

// CorrelationID propagates or assigns the X-Correlation-Id header.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(correlationHeader)
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Set(correlationHeader, cid)
		c.Header(correlationHeader, cid)
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := h.log.With(
			"correlation_id", c.GetString(correlationHeader),
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
		c.Set(loggerKey, log)
		c.Next()
		log.InfoContext(c.Request.Context(), "request handled",
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (h *Handler) logger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*slog.Logger); ok {
			return log
		}
	}
	return h.log
}

func (h *Handler) ginCreate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger(c).WarnContext(c.Request.Context(), "unreadable request body", "err", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: errServer})
		return
	}
	writeResult(c, h.create(c.Request.Context(), h.logger(c), body))
}

func (h *Handler) ginList(c *gin.Context) {
	writeResult(c, h.list(c.Request.Context(), h.logger(c)))
}

func (h *Handler) ginDelete(c *gin.Context) {
	writeResult(c, h.remove(c.Request.Context(), h.logger(c), c.Param("id")))
}

func writeResult(c *gin.Context, res result) {
	c.JSON(res.status, res.body)
}
