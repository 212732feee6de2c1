package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"reviewin_backend/internal/middleware"
	"reviewin_backend/internal/model"
	"reviewin_backend/internal/service"
	"reviewin_backend/pkg/monitoring"
	"reviewin_backend/pkg/security"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, blocklist service.TokenBlocklist) {
	cfg := a.Config

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	// Credential endpoints get their own, much stricter rate limit.
	authLimiter := security.RateLimiter(
		cfg.RateLimit.AuthMaxRequests,
		time.Duration(cfg.RateLimit.AuthWindowMinutes)*time.Minute,
	)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authLimiter, c.auth.Register)
		auth.POST("/login", authLimiter, c.auth.Login)
		// Refresh authenticates with the refresh token itself, so it
		// stays outside the access-token middleware.
		auth.POST("/refresh", c.auth.Refresh)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg, blocklist))

	anyRole := middleware.RoleMiddleware(repos.user)
	teacherOnly := middleware.RoleMiddleware(repos.user, model.RoleTeacher)
	studentOnly := middleware.RoleMiddleware(repos.user, model.RoleStudent)

	authed.POST("/auth/logout", c.auth.Logout)
	authed.GET("/auth/session", anyRole, c.auth.GetSession)

	authed.POST("/uploads", anyRole, c.upload.UploadFile)

	classes := authed.Group("/classes")
	{
		classes.POST("", teacherOnly, c.class.CreateClass)
		classes.GET("", anyRole, c.class.ListClasses)
		classes.POST("/join", studentOnly, c.class.JoinClass)
		classes.GET("/:classId", anyRole, c.class.GetClass)
		classes.DELETE("/:classId", teacherOnly, c.class.DeleteClass)
		classes.POST("/:classId/leave", studentOnly, c.class.LeaveClass)

		classes.POST("/:classId/assignments", teacherOnly, c.assignment.CreateAssignment)
		classes.PUT("/:classId/assignments/:assignmentId", teacherOnly, c.assignment.UpdateAssignment)
		classes.DELETE("/:classId/assignments/:assignmentId", teacherOnly, c.assignment.DeleteAssignment)

		classes.POST("/:classId/assignments/:assignmentId/submissions", studentOnly, c.submission.CreateSubmission)
		classes.PUT("/:classId/assignments/:assignmentId/submissions/:submissionId", studentOnly, c.submission.UpdateSubmission)
		classes.DELETE("/:classId/assignments/:assignmentId/submissions/:submissionId", studentOnly, c.submission.DeleteSubmission)
		classes.PUT("/:classId/assignments/:assignmentId/submissions/:submissionId/grade", teacherOnly, c.submission.GradeSubmission)

		classes.POST("/:classId/assignments/:assignmentId/submissions/:submissionId/peer-reviews", studentOnly, c.review.CreatePeerReview)
	}

	authed.GET("/peer-reviews/pending", studentOnly, c.review.ListPendingReviews)
}
