package app

import (
  "strings"
  "time"

  "github.com/venturecanvas/assessment-backend/internal/logger"
  "github.com/venturecanvas/assessment-backend/internal/utils"
)

type Config struct {
  JWTSecretKey    string
  AccessTokenTTL  time.Duration
  RefreshTokenTTL time.Duration
  RedisAddr       string
  AllowOrigins    []string
}

func LoadConfig(log *logger.Logger) Config {
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  redisAddr := utils.GetEnv("REDIS_ADDR", "", log)

  var allowOrigins []string
  rawOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
  for _, origin := range strings.Split(rawOrigins, ",") {
    origin = strings.TrimSpace(origin)
    if origin != "" {
      allowOrigins = append(allowOrigins, origin)
    }
  }

  return Config{
    JWTSecretKey:    jwtSecretKey,
    AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
    RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
    RedisAddr:       redisAddr,
    AllowOrigins:    allowOrigins,
  }
}
