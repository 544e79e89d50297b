package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	DBType          string // file or postgres
	DBDSN           string
	MigrationsDir   string
	FileHabits      string
	FileCompletions string

	APIToken       string
	AuthServiceURL string

	SuggestBackend string // local or remote
	SuggestURL     string
	SuggestAPIKey  string

	NotifyBackend    string // log or webhook
	NotifyWebhookURL string
	ReminderInterval time.Duration

	CacheBackend  string // none or redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:              getEnv("APP_ENV", "development"),
			LogLevel:         getEnv("LOG_LEVEL", "info"),
			Port:             getEnv("PORT", "8088"),
			DBType:           getEnv("STORAGE_BACKEND", "file"),
			DBDSN:            getEnv("POSTGRES_DSN", ""),
			MigrationsDir:    getEnv("MIGRATIONS_DIR", "migrations"),
			FileHabits:       getEnv("HABITS_FILE", "data/habits.json"),
			FileCompletions:  getEnv("COMPLETIONS_FILE", "data/completions.json"),
			APIToken:         getEnv("API_TOKEN", "MOCK-TOKEN"),
			AuthServiceURL:   getEnv("AUTH_SERVICE_URL", ""),
			SuggestBackend:   getEnv("SUGGEST_BACKEND", "local"),
			SuggestURL:       getEnv("SUGGEST_URL", ""),
			SuggestAPIKey:    getEnv("SUGGEST_API_KEY", ""),
			NotifyBackend:    getEnv("NOTIFY_BACKEND", "log"),
			NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			ReminderInterval: getDuration("REMINDER_INTERVAL", time.Minute),
			CacheBackend:     getEnv("CACHE_BACKEND", "none"),
			RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:    getEnv("REDIS_PASSWORD", ""),
			RedisDB:          getInt("REDIS_DB", 0),
			CacheTTL:         getDuration("CACHE_TTL", 5*time.Minute),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileHabits == "" || c.FileCompletions == "") {
		return errors.New("File storage requires HABITS_FILE and COMPLETIONS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.SuggestBackend == "remote" && c.SuggestURL == "" {
		return errors.New("SUGGEST_URL is required when SUGGEST_BACKEND=remote")
	}
	if c.NotifyBackend == "webhook" && c.NotifyWebhookURL == "" {
		return errors.New("NOTIFY_WEBHOOK_URL is required when NOTIFY_BACKEND=webhook")
	}
	if c.CacheBackend != "none" && c.CacheBackend != "redis" {
		return errors.New("CACHE_BACKEND must be one of: none, redis")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		f, err := os.Open(".env")
		if err != nil {
			return err
		}
		defer f.Close()
		var lines []string
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				lines = append(lines, string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
		for _, line := range lines {
			for _, l := range splitLines(line) {
				if len(l) == 0 || l[0] == '#' {
					continue
				}
				kv := splitKV(l)
				if len(kv) == 2 {
					os.Setenv(kv[0], kv[1])
				}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
