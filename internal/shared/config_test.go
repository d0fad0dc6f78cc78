package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Output.Directory != "output" {
		t.Errorf("expected default output directory %q, got %q", "output", config.Output.Directory)
	}
	if config.Matcher.Attempts != 3 {
		t.Errorf("expected 3 matcher attempts, got %d", config.Matcher.Attempts)
	}
	if config.Matcher.TimeoutSeconds != 10 {
		t.Errorf("expected 10 second timeout, got %d", config.Matcher.TimeoutSeconds)
	}
	if config.Matcher.RetryWaitSeconds != 2 {
		t.Errorf("expected 2 second retry wait, got %d", config.Matcher.RetryWaitSeconds)
	}
	if config.Matcher.PaceMS != 500 {
		t.Errorf("expected 500ms pace, got %d", config.Matcher.PaceMS)
	}
	if config.HasSpotifyCredentials() {
		t.Error("default config should not report usable credentials")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "abc"
client_secret = "def"

[output]
directory = "exports"

[matcher]
attempts = 5
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if config.Credentials.Spotify.ClientID != "abc" {
			t.Errorf("expected client id %q, got %q", "abc", config.Credentials.Spotify.ClientID)
		}
		if config.Output.Directory != "exports" {
			t.Errorf("expected directory %q, got %q", "exports", config.Output.Directory)
		}
		if config.Matcher.Attempts != 5 {
			t.Errorf("expected 5 attempts, got %d", config.Matcher.Attempts)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("CreateConfigFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read created config: %v", err)
	}
	if !strings.Contains(string(data), "client_id") {
		t.Error("created config missing client_id field")
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")

	config := DefaultConfig()
	config.ApplyEnv()

	if config.Credentials.Spotify.ClientID != "env-id" {
		t.Errorf("expected client id from env, got %q", config.Credentials.Spotify.ClientID)
	}
	if config.Credentials.Spotify.ClientSecret != "env-secret" {
		t.Errorf("expected client secret from env, got %q", config.Credentials.Spotify.ClientSecret)
	}
	if !config.HasSpotifyCredentials() {
		t.Error("expected usable credentials after env override")
	}
}

func TestHasSpotifyCredentials(t *testing.T) {
	cases := []struct {
		name   string
		id     string
		secret string
		want   bool
	}{
		{"both set", "real-id", "real-secret", true},
		{"empty id", "", "real-secret", false},
		{"placeholder id", "your_client_id_here", "real-secret", false},
		{"placeholder secret", "real-id", "your_client_secret_here", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := &Config{}
			config.Credentials.Spotify.ClientID = tc.id
			config.Credentials.Spotify.ClientSecret = tc.secret
			if got := config.HasSpotifyCredentials(); got != tc.want {
				t.Errorf("HasSpotifyCredentials() = %v, want %v", got, tc.want)
			}
		})
	}
}
