package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	DatabaseURL string

	OpenAIAPIKey string
	LLMModel     string
	LLMTimeout   time.Duration

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	CacheTTL        time.Duration
	CacheMaxEntries int
	PipelineTimeout time.Duration

	RequiredWeight  float64
	PreferredWeight float64

	MaxFreeCourses int
	MaxPaidCourses int

	AnalyzeRatePerSec float64
	AnalyzeRateBurst  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		DatabaseURL: dbURL,

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		LLMModel:     getEnv("LLM_MODEL", "gpt-4o"),
		LLMTimeout:   getEnvSeconds("LLM_TIMEOUT_SECONDS", 120*time.Second),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),

		CacheTTL:        getEnvSeconds("REPORT_CACHE_TTL_SECONDS", 60*time.Second),
		CacheMaxEntries: getEnvInt("REPORT_CACHE_MAX_ENTRIES", 64),
		PipelineTimeout: getEnvSeconds("PIPELINE_TIMEOUT_SECONDS", 300*time.Second),

		RequiredWeight:  getEnvFloat("MATCH_WEIGHT_REQUIRED", 2.0),
		PreferredWeight: getEnvFloat("MATCH_WEIGHT_PREFERRED", 1.0),

		MaxFreeCourses: getEnvInt("MAX_FREE_COURSES", 5),
		MaxPaidCourses: getEnvInt("MAX_PAID_COURSES", 5),

		AnalyzeRatePerSec: getEnvFloat("ANALYZE_RATE_PER_SEC", 1),
		AnalyzeRateBurst:  getEnvInt("ANALYZE_RATE_BURST", 3),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
