package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	APIBaseURL string
	APITimeout time.Duration

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	CORSOrigins   []string

	DBUrl string

	StateBackend string
	RedisURL     string

	UploadBackend       string
	S3Bucket            string
	S3Region            string
	S3Endpoint          string
	S3AccessKey         string
	S3SecretKey         string
	S3PublicBaseURL     string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	MapsAPIKey string

	OTPResendSeconds int
	OTPRatePerMinute int
	OTPRateBurst     int

	VerifyEmailDomain bool

	LogLevel string
	LogFile  string
}

// Load reads the process environment. A .env file in the working directory,
// when present, is applied first and never overrides variables already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:4000"), "/"),
		APITimeout: getDuration("API_TIMEOUT", 15*time.Second),

		SessionSecret: getEnv("SESSION_SECRET", "changeme"),
		SessionTTL:    getDuration("SESSION_TTL", 720*time.Hour),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		CORSOrigins:   getList("CORS_ORIGINS"),

		DBUrl: getEnv("DATABASE_URL", ""),

		StateBackend: getEnv("STATE_BACKEND", "memory"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),

		UploadBackend:       getEnv("UPLOAD_BACKEND", "s3"),
		S3Bucket:            getEnv("S3_BUCKET", "exactfit-uploads"),
		S3Region:            getEnv("S3_REGION", "me-central-1"),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
		S3PublicBaseURL:     strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		MapsAPIKey: getEnv("MAPS_API_KEY", ""),

		OTPResendSeconds: getInt("OTP_RESEND_SECONDS", 30),
		OTPRatePerMinute: getInt("OTP_RATE_PER_MIN", 10),
		OTPRateBurst:     getInt("OTP_RATE_BURST", 5),

		VerifyEmailDomain: getBool("VERIFY_EMAIL_DOMAIN", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return v
}

func getList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// OTPResendWindow is the countdown before "Resend OTP" becomes available.
func (c *Config) OTPResendWindow() time.Duration {
	if c.OTPResendSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.OTPResendSeconds) * time.Second
}

// MapsScriptURL is the Places script the address pages load.
func (c *Config) MapsScriptURL() string {
	if c.MapsAPIKey == "" {
		return ""
	}
	return "https://maps.googleapis.com/maps/api/js?libraries=places&key=" + c.MapsAPIKey
}
