package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	firstPollDateLayout     = "2006-01-02"
	defaultPollDurationDays = 7
	defaultSubreddit        = "crossword"
	defaultServerAddr       = "0.0.0.0:8080"
)

var defaultTrustedAuthors = []string{"AutoModerator", "oakgrove"}

// Config is built once at startup and passed by value; nothing reads the
// environment after Load returns.
type Config struct {
	FirstPollDate    time.Time
	PollDurationDays int
	UserAgent        string
	HTTPTimeout      time.Duration

	Reddit    RedditConfig
	XWordInfo XWordInfoConfig
	Postgres  PostgresConfig

	ServerAddr     string
	LogLevel       string
	PushgatewayURL string
}

type RedditConfig struct {
	Username       string
	Password       string
	ClientID       string
	ClientSecret   string
	Subreddit      string
	TrustedAuthors []string
	AuthURL        string
	APIURL         string
}

type XWordInfoConfig struct {
	URL     string
	Referer string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

func (p PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

// Load reads an optional .env file and then the process environment.
// Malformed values are reported; missing required values are checked by the
// Validate* methods of the binary that needs them.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		UserAgent: get("USER_AGENT", ""),
		Reddit: RedditConfig{
			Username:       get("REDDIT_USERNAME", ""),
			Password:       get("REDDIT_PASSWORD", ""),
			ClientID:       get("REDDIT_CLIENT_ID", ""),
			ClientSecret:   get("REDDIT_CLIENT_SECRET", ""),
			Subreddit:      get("REDDIT_SUBREDDIT", defaultSubreddit),
			TrustedAuthors: splitList(get("REDDIT_TRUSTED_AUTHORS", strings.Join(defaultTrustedAuthors, ","))),
			AuthURL:        get("REDDIT_AUTH_URL", ""),
			APIURL:         get("REDDIT_API_URL", ""),
		},
		XWordInfo: XWordInfoConfig{
			URL:     get("XWORDINFO_URL", ""),
			Referer: get("XWORDINFO_REFERER", ""),
		},
		Postgres: PostgresConfig{
			Host:     get("POSTGRES_HOST", "localhost"),
			Port:     get("POSTGRES_PORT", "5432"),
			User:     get("POSTGRES_USER", ""),
			Password: get("POSTGRES_PASSWORD", ""),
			DB:       get("POSTGRES_DB", ""),
		},
		ServerAddr:     get("SERVER_ADDR", defaultServerAddr),
		LogLevel:       get("LOG_LEVEL", "info"),
		PushgatewayURL: get("PUSHGATEWAY_URL", ""),
	}

	var errs []error

	if v := get("FIRST_POLL_DATE", ""); v != "" {
		date, err := time.Parse(firstPollDateLayout, v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid FIRST_POLL_DATE %q: %w", v, err))
		}
		cfg.FirstPollDate = date
	}

	duration, err := strconv.Atoi(get("POLL_DURATION_DAYS", strconv.Itoa(defaultPollDurationDays)))
	if err != nil || duration < 1 {
		errs = append(errs, errors.New("invalid POLL_DURATION_DAYS: must be a positive integer"))
	}
	cfg.PollDurationDays = duration

	if v := get("HTTP_TIMEOUT", ""); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err))
		}
		cfg.HTTPTimeout = timeout
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateReconciler checks the settings the scheduled reconciliation needs.
func (c Config) ValidateReconciler() error {
	var missing []string
	required := []struct{ key, value string }{
		{"USER_AGENT", c.UserAgent},
		{"REDDIT_USERNAME", c.Reddit.Username},
		{"REDDIT_PASSWORD", c.Reddit.Password},
		{"REDDIT_CLIENT_ID", c.Reddit.ClientID},
		{"REDDIT_CLIENT_SECRET", c.Reddit.ClientSecret},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if c.FirstPollDate.IsZero() {
		missing = append(missing, "FIRST_POLL_DATE")
	}
	if len(c.Reddit.TrustedAuthors) == 0 {
		missing = append(missing, "REDDIT_TRUSTED_AUTHORS")
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateServer checks the settings the read API needs.
func (c Config) ValidateServer() error {
	return c.validateDatabase()
}

func (c Config) validateDatabase() error {
	if c.Postgres.User == "" || c.Postgres.DB == "" {
		return errors.New("missing required configuration: POSTGRES_USER, POSTGRES_DB")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
