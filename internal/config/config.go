package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           int
	MaxConnections int
	CORSOrigins    []string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	GeminiKey     string
	GeminiModel   string
	AIMaxAttempts int
	AITimeout     time.Duration

	JWTSecret string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3001)
	v.SetDefault("MAX_CONNECTIONS", 256)
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "goals_user")
	v.SetDefault("DB_PASSWORD", "goals_password")
	v.SetDefault("DB_NAME", "goals_tracker")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_MAX_ATTEMPTS", 2)
	v.SetDefault("AI_TIMEOUT", "120s")

	v.SetDefault("JWT_SECRET", "")
}

// Load reads .env files (if any) into the environment and then the environment
// into a Config. Values already set in the environment win over .env files.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env", "../.env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err == nil {
			log.Printf("[INFO] loaded env from %s", f)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	timeout := v.GetDuration("AI_TIMEOUT")
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	attempts := v.GetInt("AI_MAX_ATTEMPTS")
	if attempts < 1 {
		attempts = 1
	}

	port := v.GetInt("DB_PORT")
	if port == 0 {
		port = 5432 // fallback
	}

	return &Config{
		Port:           v.GetInt("PORT"),
		MaxConnections: v.GetInt("MAX_CONNECTIONS"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     port,
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),

		GeminiKey:     v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		AIMaxAttempts: attempts,
		AITimeout:     timeout,

		JWTSecret: v.GetString("JWT_SECRET"),
	}
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
