package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tagtrack/internal/audit"
	"tagtrack/internal/student"
)

type studentRequest struct {
	Name     string  `json:"name" binding:"required"`
	Class    string  `json:"class"`
	ImageURL *string `json:"image_url"`
}

// ListStudents returns all students with their current attendance flags.
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if students == nil {
		students = []student.Student{}
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// CreateStudent adds a student with name and class only; tag registration
// is a separate step.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student name is required"})
		return
	}

	st, err := h.students.Create(c.Request.Context(), req.Name, req.Class, req.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.record(c, audit.ActionStudentCreate, "student", fmt.Sprintf("%d", st.ID), "created "+st.Name)
	c.JSON(http.StatusCreated, st)
}

// UpdateStudent changes descriptive fields.
func (h *Handler) UpdateStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.students.Update(c.Request.Context(), id, req.Name, req.Class, req.ImageURL)
	if errors.Is(err, student.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.record(c, audit.ActionStudentUpdate, "student", fmt.Sprintf("%d", st.ID), "updated "+st.Name)
	c.JSON(http.StatusOK, st)
}

// DeleteStudent hard-removes a student. The audit trail keeps its rows for
// the deleted id; that is deliberate.
func (h *Handler) DeleteStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	err = h.students.Delete(c.Request.Context(), id)
	if errors.Is(err, student.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.record(c, audit.ActionStudentDelete, "student", fmt.Sprintf("%d", id), "deleted student")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type registerTagRequest struct {
	TagID string `json:"tag_id"`
}

// RegisterTag binds a tag to a student. With no tag id in the body a fresh
// one is minted, mirroring the reader daemon writing a new UUID onto a
// blank tag.
func (h *Handler) RegisterTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	var req registerTagRequest
	_ = c.ShouldBindJSON(&req)
	if req.TagID == "" {
		req.TagID = uuid.NewString()
	}

	err = h.students.AssignTag(c.Request.Context(), id, req.TagID)
	switch {
	case errors.Is(err, student.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	case errors.Is(err, student.ErrTagTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "tag already registered to another student"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.record(c, audit.ActionTagRegister, "student", fmt.Sprintf("%d", id), "registered tag "+req.TagID)
	c.JSON(http.StatusOK, gin.H{"student_id": id, "tag_id": req.TagID})
}
