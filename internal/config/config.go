package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	News      NewsAPIConfig
	MinIO     MinIOConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	Origins []string
}

type JWTConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// RouteLimit is a rate-limit override for one mounted route.
type RouteLimit struct {
	Window time.Duration
	Max    int
}

type RateLimitConfig struct {
	Enabled  bool
	UseRedis bool
	Window   time.Duration
	Max      int
	// Per-route overrides; only mounted routes are listed here.
	Login    RouteLimit
	Register RouteLimit
}

type NewsAPIConfig struct {
	BaseURL string
	APIKey  string
	Country string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "templatehub")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 60)
	viper.SetDefault("JWT_REFRESH_TOKEN_TTL", 10080)
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 900)
	viper.SetDefault("RATE_LIMIT_MAX", 100)
	viper.SetDefault("RATE_LIMIT_LOGIN_WINDOW_SECONDS", 300)
	viper.SetDefault("RATE_LIMIT_LOGIN_MAX", 5)
	viper.SetDefault("RATE_LIMIT_REGISTER_WINDOW_SECONDS", 900)
	viper.SetDefault("RATE_LIMIT_REGISTER_MAX", 3)
	viper.SetDefault("NEWS_API_BASE_URL", "https://newsapi.org/v2")
	viper.SetDefault("NEWS_API_COUNTRY", "us")
	viper.SetDefault("MINIO_BUCKET", "templatehub-media")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		CORS: CORSConfig{
			Origins: splitOrigins(viper.GetString("CORS_ORIGIN")),
		},
		JWT: JWTConfig{
			AccessSecret:    viper.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret:   viper.GetString("JWT_REFRESH_SECRET"),
			AccessTokenTTL:  time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
			RefreshTokenTTL: time.Duration(viper.GetInt("JWT_REFRESH_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis: viper.GetBool("RATE_LIMIT_USE_REDIS"),
			Window:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
			Max:      viper.GetInt("RATE_LIMIT_MAX"),
			Login: RouteLimit{
				Window: time.Duration(viper.GetInt("RATE_LIMIT_LOGIN_WINDOW_SECONDS")) * time.Second,
				Max:    viper.GetInt("RATE_LIMIT_LOGIN_MAX"),
			},
			Register: RouteLimit{
				Window: time.Duration(viper.GetInt("RATE_LIMIT_REGISTER_WINDOW_SECONDS")) * time.Second,
				Max:    viper.GetInt("RATE_LIMIT_REGISTER_MAX"),
			},
		},
		News: NewsAPIConfig{
			BaseURL: viper.GetString("NEWS_API_BASE_URL"),
			APIKey:  viper.GetString("NEWS_API_KEY"),
			Country: viper.GetString("NEWS_API_COUNTRY"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
	}

	return cfg, nil
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
