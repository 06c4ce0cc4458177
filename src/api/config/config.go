package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MySQLDSN      string
	RedisURL      string
	Port          string
	AdminEmail    string
	AdminPassword string // plaintext or bcrypt hash ($2...)
	SessionSecret string
	CORSOrigins   []string
	SubmitRate    int // public submissions per window per IP
	SubmitWindow  int // window length in seconds
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	rate, _ := strconv.Atoi(getenv("SUBMIT_RATE", "10"))
	window, _ := strconv.Atoi(getenv("SUBMIT_WINDOW_SECONDS", "3600"))
	return Config{
		MySQLDSN:      getenv("MYSQL_DSN", "slownik:slownik@tcp(localhost:3306)/slownik?parseTime=true"),
		RedisURL:      getenv("REDIS_URL", "redis://localhost:6379/0"),
		Port:          getenv("PORT", "8080"),
		AdminEmail:    getenv("ADMIN_EMAIL", ""),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),
		SessionSecret: getenv("SESSION_SECRET", ""),
		CORSOrigins:   strings.Split(getenv("CORS_ORIGINS", "http://localhost:3000"), ","),
		SubmitRate:    rate,
		SubmitWindow:  window,
	}
}
