package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tagtrack/internal/audit"
	"tagtrack/internal/sysconfig"
	"tagtrack/internal/user"
)

// ListUsers returns all staff accounts.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if users == nil {
		users = []user.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserRole changes an account's role.
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	role := strings.TrimSpace(c.Query("role"))
	if user.Level(role) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	if h.userExec(c, h.users.UpdateRole(c.Request.Context(), id, role)) {
		h.record(c, audit.ActionUserUpdate, "user", fmt.Sprintf("%d", id), "role set to "+role)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role})
	}
}

// ActivateUser re-enables a deactivated account.
func (h *Handler) ActivateUser(c *gin.Context) {
	h.setActive(c, true)
}

// DeactivateUser disables an account without deleting it.
func (h *Handler) DeactivateUser(c *gin.Context) {
	h.setActive(c, false)
}

func (h *Handler) setActive(c *gin.Context, active bool) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if h.userExec(c, h.users.SetActive(c.Request.Context(), id, active)) {
		h.record(c, audit.ActionUserUpdate, "user", fmt.Sprintf("%d", id), fmt.Sprintf("active set to %v", active))
		c.JSON(http.StatusOK, gin.H{"user_id": id, "is_active": active})
	}
}

// DeleteUser removes an account.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if h.userExec(c, h.users.Delete(c.Request.Context(), id)) {
		h.record(c, audit.ActionUserDelete, "user", fmt.Sprintf("%d", id), "deleted user")
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// AuditLogs lists the full audit trail with optional action/target filters.
func (h *Handler) AuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	f := audit.Filter{Limit: limit, Offset: offset, TargetType: c.Query("target_type")}
	if action := c.Query("action"); action != "" {
		f.Actions = []string{action}
	}

	logs, err := h.recorder.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []audit.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetConfig returns the runtime settings.
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.cfgStore.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PutConfig replaces the runtime settings.
func (h *Handler) PutConfig(c *gin.Context) {
	var cfg sysconfig.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cfg.ScanTimeoutSeconds <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nfc_scan_timeout must be positive"})
		return
	}
	if err := h.cfgStore.Put(c.Request.Context(), cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.record(c, audit.ActionConfigUpdate, "system", "config", fmt.Sprintf("scan timeout %ds", cfg.ScanTimeoutSeconds))
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// userExec maps store errors onto responses; returns true when the caller
// should write the success body.
func (h *Handler) userExec(c *gin.Context, err error) bool {
	if errors.Is(err, user.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	return true
}
