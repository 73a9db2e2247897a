package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range append(append([]string{}, WebhookURLKeys...), WebhookTokenKeys...) {
		t.Setenv(key, "")
	}
	t.Setenv("FEEDBACK_STORE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, StoreSupabase, cfg.Feedback.Store)
	assert.Equal(t, "feedback", cfg.Feedback.Table)
	assert.Equal(t, DefaultUploadFolder, cfg.Cloudinary.DefaultFolder)
	assert.False(t, cfg.Webhook.IsConfigured())
}

func TestLoad_WebhookAliasPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantURL   string
		wantToken string
	}{
		{
			name: "primary names win",
			env: map[string]string{
				"SHEETS_WEBHOOK_URL":   "https://primary/exec",
				"APPS_SCRIPT_URL":      "https://secondary/exec",
				"SHEETS_TOKEN":         "primary-token",
				"PUZZLE_REQUEST_TOKEN": "secondary-token",
			},
			wantURL:   "https://primary/exec",
			wantToken: "primary-token",
		},
		{
			name: "secondary names used when primary empty",
			env: map[string]string{
				"SHEETS_WEBHOOK_URL":   "",
				"APPS_SCRIPT_URL":      "https://secondary/exec",
				"SHEETS_TOKEN":         "",
				"PUZZLE_REQUEST_TOKEN": "secondary-token",
			},
			wantURL:   "https://secondary/exec",
			wantToken: "secondary-token",
		},
		{
			name: "mixed",
			env: map[string]string{
				"SHEETS_WEBHOOK_URL":   "",
				"APPS_SCRIPT_URL":      "https://secondary/exec",
				"SHEETS_TOKEN":         "primary-token",
				"PUZZLE_REQUEST_TOKEN": "",
			},
			wantURL:   "https://secondary/exec",
			wantToken: "primary-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, cfg.Webhook.URL)
			assert.Equal(t, tt.wantToken, cfg.Webhook.Token)
			assert.True(t, cfg.Webhook.IsConfigured())
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	v := viper.New()
	v.Set("B", "b")
	v.Set("C", "c")

	assert.Equal(t, "b", FirstNonEmpty(v, "A", "B", "C"))
	assert.Equal(t, "", FirstNonEmpty(v, "A", "D"))
	assert.Equal(t, "", FirstNonEmpty(v))
}

func TestCloudinaryConfig_HasCredentials(t *testing.T) {
	assert.True(t, CloudinaryConfig{CloudName: "c", APIKey: "k", APISecret: "s"}.HasCredentials())
	assert.False(t, CloudinaryConfig{CloudName: "c", APIKey: "k"}.HasCredentials())
	assert.False(t, CloudinaryConfig{APIKey: "k", APISecret: "s"}.HasCredentials())
}

func TestAdaptConfigForServerless(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Feedback: FeedbackConfig{
			Store:        StoreSQLite,
			SupabaseURL:  "https://project.supabase.co",
			MaxOpenConns: 5,
			MaxIdleConns: 2,
		},
	}

	same := AdaptConfigForServerless(cfg, false)
	assert.Equal(t, StoreSQLite, same.Feedback.Store)
	assert.Equal(t, 5, same.Feedback.MaxOpenConns)

	adapted := AdaptConfigForServerless(cfg, true)
	assert.Equal(t, StoreSupabase, adapted.Feedback.Store)
	assert.Equal(t, 1, adapted.Feedback.MaxOpenConns)
	assert.Equal(t, 1, adapted.Feedback.MaxIdleConns)
	assert.Equal(t, "production", adapted.Environment)
}
