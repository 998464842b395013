package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tagtrack/internal/audit"
	"tagtrack/internal/reader"
	"tagtrack/internal/scan"
	"tagtrack/internal/user"
)

type scanRequest struct {
	TagID string `json:"tag_id" binding:"required"`
}

// PostScan feeds one tag presentation from the reader daemon into the
// engine.
func (h *Handler) PostScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.RecordScan(c.Request.Context(), req.TagID, source(c))
	switch {
	case errors.Is(err, scan.ErrEmptyTag):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, scan.ErrUnregisteredTag):
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not registered"})
	case errors.Is(err, scan.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent scan, re-present the tag"})
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, res)
	}
}

// ScanTest waits for one tag on the attached reader, using the configured
// scan timeout, and runs it through the engine.
func (h *Handler) ScanTest(c *gin.Context) {
	if h.reader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "NFC reader not available"})
		return
	}

	cfg, err := h.cfgStore.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tagID, err := h.reader.WaitForTag(c.Request.Context(), cfg.ScanTimeout())
	if errors.Is(err, reader.ErrNoTag) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "no tag presented within timeout"})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	res, err := h.engine.RecordScan(c.Request.Context(), tagID, source(c))
	if errors.Is(err, scan.ErrUnregisteredTag) {
		c.JSON(http.StatusOK, gin.H{"tag_id": tagID, "registered": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag_id": tagID, "registered": true, "result": res})
}

// AttendanceStatus lists every student's current flag; the dashboard polls
// this when it is not subscribed to push events.
func (h *Handler) AttendanceStatus(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	type row struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Class    string `json:"class"`
		InSchool bool   `json:"in_school"`
		LastScan any    `json:"last_scan"`
	}
	rows := make([]row, 0, len(students))
	for _, s := range students {
		rows = append(rows, row{ID: s.ID, Name: s.Name, Class: s.Class, InSchool: s.InSchool, LastScan: s.LastScan})
	}
	c.JSON(http.StatusOK, gin.H{"students": rows})
}

// AttendanceLogs lists check-in/out audit rows.
func (h *Handler) AttendanceLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	logs, err := h.recorder.List(c.Request.Context(), audit.Filter{
		Actions: []string{audit.ActionCheckIn, audit.ActionCheckOut},
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []audit.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// AssignDuty replaces the current duty teacher.
func (h *Handler) AssignDuty(c *gin.Context) {
	teacherID, err := strconv.ParseInt(c.Param("teacherID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher id"})
		return
	}

	u, err := h.users.Get(c.Request.Context(), teacherID)
	if errors.Is(err, user.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "teacher not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.tracker.Assign(c.Request.Context(), u.ID, u.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.record(c, audit.ActionDutyAssign, "user", fmt.Sprintf("%d", u.ID), "duty assigned to "+u.Username)
	c.JSON(http.StatusOK, gin.H{"teacher_id": u.ID, "teacher_name": u.Username})
}

// CurrentDuty returns the active assignment, or nulls when nobody has ever
// been assigned.
func (h *Handler) CurrentDuty(c *gin.Context) {
	cur, err := h.tracker.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cur == nil {
		c.JSON(http.StatusOK, gin.H{"teacher_id": nil, "teacher_name": nil})
		return
	}
	c.JSON(http.StatusOK, cur)
}
