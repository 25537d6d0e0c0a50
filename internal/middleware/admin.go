package middleware

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/requestdata"
  "github.com/venturecanvas/assessment-backend/internal/types"
)

// AdminMiddleware gates the reference-data console. It assumes RequireAuth
// already ran and populated the request data.
type AdminMiddleware struct {
  log *logger.Logger
}

func NewAdminMiddleware(log *logger.Logger) *AdminMiddleware {
  middlewareLogger := log.With("middleware", "AdminMiddleware")
  return &AdminMiddleware{log: middlewareLogger}
}

func (am *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
  return func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    if rd == nil || rd.Role != types.UserRoleAdmin {
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
      return
    }
    c.Next()
  }
}
