package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/venturecanvas/assessment-backend/internal/handlers"
  "github.com/venturecanvas/assessment-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  AdminMiddleware   *middleware.AdminMiddleware
  UserHandler       *handlers.UserHandler
  AssessmentHandler *handlers.AssessmentHandler
  ReportHandler     *handlers.ReportHandler
  AdminHandler      *handlers.AdminHandler
  AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  allowOrigins := cfg.AllowOrigins
  if len(allowOrigins) == 0 {
    allowOrigins = []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    }
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

  // ===============
  // || Protected ||
  // ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  // Assessments
  protected.POST("/assessments", cfg.AssessmentHandler.Create)
  protected.GET("/assessments", cfg.AssessmentHandler.List)
  protected.GET("/assessments/:id/workspace", cfg.AssessmentHandler.GetWorkspace)
  protected.PUT("/assessments/:id/responses", cfg.AssessmentHandler.SaveResponses)
  protected.POST("/assessments/:id/submit", cfg.ReportHandler.Generate)
  // Reports
  protected.GET("/reports", cfg.ReportHandler.List)
  protected.GET("/reports/:id", cfg.ReportHandler.Get)

  // ===============
  // || Admin     ||
  // ===============
  admin := router.Group("/api/admin")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AdminMiddleware.RequireAdmin())
  admin.GET("/overview", cfg.AdminHandler.Overview)
  admin.POST("/categories", cfg.AdminHandler.CreateCategory)
  admin.GET("/categories", cfg.AdminHandler.ListCategories)
  admin.PATCH("/categories/:id", cfg.AdminHandler.UpdateCategory)
  admin.DELETE("/categories/:id", cfg.AdminHandler.DeleteCategory)
  admin.POST("/questions", cfg.AdminHandler.CreateQuestion)
  admin.GET("/questions", cfg.AdminHandler.ListQuestions)
  admin.PATCH("/questions/:id", cfg.AdminHandler.UpdateQuestion)
  admin.DELETE("/questions/:id", cfg.AdminHandler.DeleteQuestion)
  admin.POST("/preambles", cfg.AdminHandler.CreatePreamble)
  admin.GET("/preambles", cfg.AdminHandler.ListPreambles)
  admin.PATCH("/preambles/:id", cfg.AdminHandler.UpdatePreamble)
  admin.DELETE("/preambles/:id", cfg.AdminHandler.DeletePreamble)

  return router
}
