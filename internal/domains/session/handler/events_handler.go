package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/session/model"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
)

const (
	EventSnapshot  = "snapshot"
	EventHeartbeat = "heartbeat"
)

// Handler streams session snapshots to the browser
type Handler struct {
	heartbeat time.Duration
}

func NewHandler(heartbeat time.Duration) *Handler {
	return &Handler{heartbeat: heartbeat}
}

// GetSession handles GET /session
func (h *Handler) GetSession(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved successfully", sess.Snapshot())
}

// Events handles GET /session/events
// The current snapshot is sent first, then one event per cart or checkout change.
// Slow clients only get the latest snapshot.
func (h *Handler) Events(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	if sess == nil {
		return
	}

	updates := make(chan model.Snapshot, 1)
	unsubscribe := sess.Subscribe(func(snap model.Snapshot) {
		select {
		case updates <- snap:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- snap:
			default:
			}
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(EventSnapshot, sess.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap := <-updates:
			c.SSEvent(EventSnapshot, snap)
			sess.Touch(time.Now())
			return true
		case t := <-ticker.C:
			c.SSEvent(EventHeartbeat, gin.H{"at": t.UTC()})
			sess.Touch(t)
			return true
		}
	})
}
