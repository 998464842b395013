// Package handler wires the HTTP surface to the core services. Role
// enforcement lives in the router middleware; handlers only pull the
// already-verified actor identity for audit attribution.
package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tagtrack/internal/audit"
	"tagtrack/internal/auth"
	"tagtrack/internal/duty"
	"tagtrack/internal/reader"
	"tagtrack/internal/scan"
	"tagtrack/internal/store"
	"tagtrack/internal/student"
	"tagtrack/internal/sysconfig"
	"tagtrack/internal/user"
)

// TokenConfig is what the auth handlers need to issue JWTs.
type TokenConfig struct {
	Issuer     string
	SigningKey string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Handler struct {
	engine   *scan.Engine
	students student.Store
	users    user.Store
	accounts *user.Service
	tracker  duty.Tracker
	recorder audit.Recorder
	cfgStore sysconfig.Store
	reader   reader.Reader // nil when no reader is attached
	redis    *store.Redis  // nil in memory-only deployments
	tokens   TokenConfig
}

func New(
	engine *scan.Engine,
	students student.Store,
	users user.Store,
	accounts *user.Service,
	tracker duty.Tracker,
	recorder audit.Recorder,
	cfgStore sysconfig.Store,
	rdr reader.Reader,
	redis *store.Redis,
	tokens TokenConfig,
) *Handler {
	return &Handler{
		engine:   engine,
		students: students,
		users:    users,
		accounts: accounts,
		tracker:  tracker,
		recorder: recorder,
		cfgStore: cfgStore,
		reader:   rdr,
		redis:    redis,
		tokens:   tokens,
	}
}

// Healthz reports dependency health.
func (h *Handler) Healthz(dbHealthy func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisOK := h.redis == nil || h.redis.Healthy(c.Request.Context())
		dbOK := dbHealthy()
		status := http.StatusOK
		if !redisOK || !dbOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisOK, "db": dbOK})
	}
}

// Status mirrors the reader daemon's status probe.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reader_connected": h.reader != nil})
}

// source builds audit attribution from the verified request context.
func source(c *gin.Context) scan.Source {
	src := scan.Source{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if claims, ok := auth.FromContext(c); ok {
		src.ActorID = claims.UserID
	}
	return src
}

// record appends an audit entry for a handler-level action, degrading to a
// log line on failure; see the engine for the same policy on scans.
func (h *Handler) record(c *gin.Context, action, targetType, targetID, details string) {
	src := source(c)
	err := h.recorder.Record(c.Request.Context(), audit.Entry{
		UserID:     src.ActorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		IPAddress:  src.IPAddress,
		UserAgent:  src.UserAgent,
	})
	if err != nil {
		log.Printf("handler: audit write failed for action %s: %v", action, err)
	}
}
