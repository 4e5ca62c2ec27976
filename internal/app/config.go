package app

import (
	"time"

	"github.com/ai-24/word-warmup/internal/pkg/logger"
	"github.com/ai-24/word-warmup/internal/pkg/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	SessionTTL     time.Duration
	RedisAddr      string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	sessionTTLSeconds := utils.GetEnvAsInt("SESSION_TTL", 86400, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		SessionTTL:     time.Duration(sessionTTLSeconds) * time.Second,
		RedisAddr:      redisAddr,
	}
}
