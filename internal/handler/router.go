package handler

import (
	"github.com/gin-gonic/gin"

	"tagtrack/internal/auth"
	"tagtrack/internal/user"
)

// RegisterRoutes mounts the versioned API. Role gates: any authenticated
// staff member can manage students and scans, IT staff and up can delete
// students and read the audit trail, admins own accounts and settings.
func (h *Handler) RegisterRoutes(r *gin.Engine, signingKey, issuer string) {
	r.GET("/status", h.Status)
	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)

	authed := r.Group("/v1", auth.Authenticate(signingKey, issuer))
	{
		authed.GET("/students", h.ListStudents)
		authed.POST("/students", h.CreateStudent)
		authed.PUT("/students/:id", h.UpdateStudent)
		authed.POST("/students/:id/tag", h.RegisterTag)

		authed.POST("/scan", h.PostScan)
		authed.GET("/scan/test", h.ScanTest)
		authed.GET("/attendance/status", h.AttendanceStatus)
		authed.GET("/attendance/logs", h.AttendanceLogs)

		authed.POST("/duty/:teacherID", h.AssignDuty)
		authed.GET("/duty", h.CurrentDuty)
	}

	elevated := authed.Group("", auth.RequireLevel(user.Level(user.RoleITStaff)))
	{
		elevated.DELETE("/students/:id", h.DeleteStudent)
		elevated.GET("/audit-logs", h.AuditLogs)
	}

	admin := authed.Group("/admin", auth.RequireLevel(user.Level(user.RoleAdmin)))
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/role", h.UpdateUserRole)
		admin.POST("/users/:id/activate", h.ActivateUser)
		admin.POST("/users/:id/deactivate", h.DeactivateUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.GET("/config", h.GetConfig)
		admin.PUT("/config", h.PutConfig)
	}
}
