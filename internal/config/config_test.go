package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func reconcilerEnv() map[string]string {
	return map[string]string{
		"FIRST_POLL_DATE":      "2023-01-15",
		"USER_AGENT":           "crosswordpolls/1.0",
		"REDDIT_USERNAME":      "user",
		"REDDIT_PASSWORD":      "pass",
		"REDDIT_CLIENT_ID":     "id",
		"REDDIT_CLIENT_SECRET": "secret",
		"POSTGRES_USER":        "postgres",
		"POSTGRES_DB":          "crosswords",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(reconcilerEnv()))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), cfg.FirstPollDate)
	assert.Equal(t, 7, cfg.PollDurationDays)
	assert.Equal(t, "crossword", cfg.Reddit.Subreddit)
	assert.Equal(t, []string{"AutoModerator", "oakgrove"}, cfg.Reddit.TrustedAuthors)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, "postgres://postgres:@localhost:5432/crosswords?sslmode=disable", cfg.Postgres.ConnString())
	assert.NoError(t, cfg.ValidateReconciler())
}

func TestFromEnvOverrides(t *testing.T) {
	env := reconcilerEnv()
	env["POLL_DURATION_DAYS"] = "3"
	env["HTTP_TIMEOUT"] = "15s"
	env["REDDIT_TRUSTED_AUTHORS"] = " mod , , other "

	cfg, err := FromEnv(lookupFrom(env))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.PollDurationDays)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"mod", "other"}, cfg.Reddit.TrustedAuthors)
}

func TestFromEnvMalformed(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad date", "FIRST_POLL_DATE", "15/01/2023"},
		{"non numeric duration", "POLL_DURATION_DAYS", "week"},
		{"zero duration", "POLL_DURATION_DAYS", "0"},
		{"bad timeout", "HTTP_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := reconcilerEnv()
			env[tt.key] = tt.val

			_, err := FromEnv(lookupFrom(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestValidateReconcilerMissing(t *testing.T) {
	env := reconcilerEnv()
	delete(env, "REDDIT_PASSWORD")
	delete(env, "FIRST_POLL_DATE")

	cfg, err := FromEnv(lookupFrom(env))
	require.NoError(t, err)

	err = cfg.ValidateReconciler()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDDIT_PASSWORD")
	assert.Contains(t, err.Error(), "FIRST_POLL_DATE")
}

func TestValidateServer(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{}))
	require.NoError(t, err)
	assert.Error(t, cfg.ValidateServer())

	cfg, err = FromEnv(lookupFrom(map[string]string{"POSTGRES_USER": "u", "POSTGRES_DB": "d"}))
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateServer())
}
