package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =======================
// APP CONFIG
// =======================
type AppConfig struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	// DBMaxOpenConns: disesuaikan dengan limit PgBouncer
	DBMaxOpenConns int
	DBMaxIdleConns int

	LogLevel          string
	TextScoringPolicy string

	// HTTP
	CorsOrigins   []string
	RatePerMinute int
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

// Load membaca .env (kalau ada) lalu menyusun AppConfig.
func Load() AppConfig {
	LoadEnv()
	return AppConfig{
		Port:              GetEnv("PORT", "3000"),
		DBUser:            GetEnv("DB_USER"),
		DBPassword:        GetEnv("DB_PASSWORD"),
		DBHost:            GetEnv("DB_HOST", "localhost"),
		DBPort:            GetEnv("DB_PORT", "5432"),
		DBName:            GetEnv("DB_NAME"),
		DBSSLMode:         GetEnv("DB_SSLMODE", "require"),
		DBMaxOpenConns:    GetEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    GetEnvInt("DB_MAX_IDLE_CONNS", 10),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		TextScoringPolicy: GetEnv("TEXT_SCORING_POLICY", "pending_review"),
		CorsOrigins:       GetEnvList("CORS_ORIGINS"),
		RatePerMinute:     GetEnvInt("RATE_LIMIT_PER_MINUTE", 100),
	}
}

// DSN: statement_timeout diselaraskan dengan timeout HTTP.
func (c AppConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=jurnalku&options=-c%%20statement_timeout%%3D3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s bukan angka (%q), pakai default %d", key, v, def)
		return def
	}
	return n
}

// GetEnvList: nilai dipisah koma, item kosong dibuang.
func GetEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(GetEnv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
