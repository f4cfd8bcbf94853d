package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the client settings resolved from the environment.
// Flags in cmd/ and main.go override individual fields after Load.
type Config struct {
	APIURL      string
	MaxChars    int
	DownloadDir string
	Debug       bool

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads .env if present (non-fatal if missing) and builds a Config
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:      strings.TrimRight(GetEnvOrDefault("TTV_API_URL", "http://localhost:5000"), "/"),
		MaxChars:    DefaultMaxChars,
		DownloadDir: GetEnvOrDefault("TTV_DOWNLOAD_DIR", DownloadDir),
		Debug:       os.Getenv("TTV_DEBUG") != "",

		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:       strings.TrimSpace(os.Getenv("S3_PREFIX")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),

		KafkaTopic: GetEnvOrDefault("KAFKA_TOPIC_JOB_EVENTS", "video-job-events"),
	}

	if v := os.Getenv("TTV_MAX_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxChars = n
		}
	}

	if brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
