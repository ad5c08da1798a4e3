package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	Identifier IdentifierConfig
	Lifecycle  LifecycleConfig
	Policy     map[string][]string
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Timezone string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type AuthConfig struct {
	Mode      string // "session" or "jwt"
	JWTSecret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type IdentifierConfig struct {
	MaxAttempts      int
	LegacyTrackingID bool
}

type LifecycleConfig struct {
	StrictTourRequestTransitions bool
}

// PolicyOperations lists every role-gated operation. Each one reads its
// allowed roles from POLICY_<OPERATION>_ROLES, e.g. POLICY_BOOKING_UPDATE_STATUS_ROLES.
var PolicyOperations = []string{
	"booking.list",
	"booking.read",
	"booking.update_status",
	"booking.update_payment",
	"booking.delete",
	"tour_request.list",
	"tour_request.read",
	"tour_request.update",
	"tour_request.delete",
	"custom_booking.read",
	"custom_booking.update",
	"custom_booking.delete",
}

// PolicyEnvKey returns the environment key holding the roles for operation.
func PolicyEnvKey(operation string) string {
	key := strings.ToUpper(strings.NewReplacer(".", "_").Replace(operation))
	return "POLICY_" + key + "_ROLES"
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "travel-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "Local")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("AUTH_MODE", "session")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 300)
	v.SetDefault("RATE_LIMIT_RPS", 2)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("IDENTIFIER_MAX_ATTEMPTS", 3)
	v.SetDefault("IDENTIFIER_LEGACY_TRACKING_ID", false)
	v.SetDefault("TOUR_REQUEST_STRICT_TRANSITIONS", true)
	for _, op := range PolicyOperations {
		v.SetDefault(PolicyEnvKey(op), "ADMIN")
	}

	// .env is optional; plain environment variables are enough in containers.
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	return buildConfig(v), nil
}

func buildConfig(v *viper.Viper) *Config {
	policy := make(map[string][]string, len(PolicyOperations))
	for _, op := range PolicyOperations {
		policy[op] = SplitList(v.GetString(PolicyEnvKey(op)))
	}

	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Port:     v.GetString("PORT"),
			Debug:    v.GetBool("DEBUG"),
			LogPath:  v.GetString("LOG_PATH"),
			Timezone: v.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			Mode:      strings.ToLower(v.GetString("AUTH_MODE")),
			JWTSecret: v.GetString("JWT_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: SplitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Identifier: IdentifierConfig{
			MaxAttempts:      v.GetInt("IDENTIFIER_MAX_ATTEMPTS"),
			LegacyTrackingID: v.GetBool("IDENTIFIER_LEGACY_TRACKING_ID"),
		},
		Lifecycle: LifecycleConfig{
			StrictTourRequestTransitions: v.GetBool("TOUR_REQUEST_STRICT_TRANSITIONS"),
		},
		Policy: policy,
	}
}

// Location resolves APP_TIMEZONE, falling back to the server's local zone.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
