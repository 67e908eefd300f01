package app

import (
	"quiz_portal_backend/internal/config"
	"quiz_portal_backend/internal/middleware"
	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes (no caller identity)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/webhooks/identity", c.webhook.HandleIdentityEvent)
	}

	// Authenticated routes
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg, repos.user))
	{
		auth.GET("/me", c.user.Me)

		// Quiz-taker surface
		auth.GET("/quiz/start", c.quiz.Start)
		auth.POST("/quiz/submit", c.quiz.Submit)
		auth.GET("/quiz/domains", c.quiz.ListDomains)
		auth.GET("/quiz/sessions", c.quiz.ListSessions)
		auth.GET("/quiz/sessions/:id", c.quiz.ReviewSession)

		// Organization membership workflow; per-org approver scoping is
		// enforced inside the service.
		auth.GET("/organizations", c.org.ListOrganizations)
		auth.POST("/org-requests", c.org.CreateRequest)
		auth.GET("/org-requests/pending", c.org.PendingRequests)
		auth.POST("/org-requests/decide", c.org.Decide)
		auth.GET("/org-users", c.org.OrgUsers)
		auth.GET("/roles", c.org.ListRoles)

		// Question bank authoring
		admin := auth.Group("/")
		admin.Use(middleware.RoleMiddleware(model.RoleSystemAdmin))
		{
			admin.POST("/questions", c.question.Create)
			admin.PUT("/questions/:id", c.question.Update)
			admin.DELETE("/questions/:id", c.question.Delete)
		}
		auth.GET("/questions", c.question.List)
		auth.GET("/questions/:id", c.question.Get)
	}
}
