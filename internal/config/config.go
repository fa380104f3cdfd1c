package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	ImageStoreLocal = "local"
	ImageStoreS3    = "s3"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration

	StoreBackend string
	DatabaseURL  string
	DBMaxConns   int32
	DBMinConns   int32

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration
	CORSOrigins   []string
	AdminEmails   []string

	AdminContactEmail     string
	ActivityRetentionDays int
	ActivityPurgeInterval time.Duration
	TokenCleanupInterval  time.Duration

	MaxUploadSize     int64
	ImageMaxDimension int
	ImageStore        string
	UploadRoot        string
	PublicBaseURL     string
	S3                S3Config

	SortLocale         string
	EventDebounce      time.Duration
	BulkConcurrency    int
	ReportOrganization string

	LogLevel  string
	LogFormat string
}

type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		StoreBackend:            strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 2)),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAccessTTL:            getDuration("JWT_ACCESS_TTL", 15*time.Minute),
		JWTRefreshTTL:           getDuration("JWT_REFRESH_TTL", 168*time.Hour),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
		AdminEmails:             lowerAll(splitCSV(os.Getenv("ADMIN_EMAILS"))),
		AdminContactEmail:       strings.TrimSpace(os.Getenv("ADMIN_CONTACT_EMAIL")),
		ActivityRetentionDays:   getInt("ACTIVITY_RETENTION_DAYS", 60),
		ActivityPurgeInterval:   getDuration("ACTIVITY_PURGE_INTERVAL", 0),
		TokenCleanupInterval:    getDuration("TOKEN_CLEANUP_INTERVAL", time.Hour),
		MaxUploadSize:           getInt64("MAX_UPLOAD_SIZE", 5*1024*1024),
		ImageMaxDimension:       getInt("IMAGE_MAX_DIMENSION", 1024),
		ImageStore:              strings.ToLower(getEnv("IMAGE_STORE", ImageStoreLocal)),
		UploadRoot:              getEnv("UPLOAD_ROOT", "./data/uploads"),
		PublicBaseURL:           strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		S3: S3Config{
			Endpoint:        strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:     strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey: strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			PublicBaseURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")), "/"),
		},
		SortLocale:         getEnv("SORT_LOCALE", "en"),
		EventDebounce:      getDuration("EVENT_DEBOUNCE", 300*time.Millisecond),
		BulkConcurrency:    getInt("BULK_CONCURRENCY", 8),
		ReportOrganization: getEnv("REPORT_ORGANIZATION", "University Lost & Found"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendPostgres, BackendMemory)
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}

	if c.ImageMaxDimension <= 0 {
		return fmt.Errorf("IMAGE_MAX_DIMENSION must be positive")
	}

	switch c.ImageStore {
	case ImageStoreLocal:
		if strings.TrimSpace(c.UploadRoot) == "" {
			return fmt.Errorf("UPLOAD_ROOT cannot be empty")
		}
	case ImageStoreS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when IMAGE_STORE=s3")
		}
	default:
		return fmt.Errorf("IMAGE_STORE must be %q or %q", ImageStoreLocal, ImageStoreS3)
	}

	if c.ActivityRetentionDays <= 0 {
		return fmt.Errorf("ACTIVITY_RETENTION_DAYS must be positive")
	}

	if c.ActivityPurgeInterval < 0 || c.TokenCleanupInterval < 0 {
		return fmt.Errorf("job intervals cannot be negative")
	}

	if c.BulkConcurrency <= 0 {
		return fmt.Errorf("BULK_CONCURRENCY must be positive")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}

	return nil
}

// ActivityRetention is the age after which activity-log entries may be purged.
func (c *Config) ActivityRetention() time.Duration {
	return time.Duration(c.ActivityRetentionDays) * 24 * time.Hour
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}
