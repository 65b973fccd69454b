package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "LOG_DIR", "TOKEN_API_BASE_URL", "GRAPH_API_KEY",
		"MODEL_PROVIDER", "MODEL_API_KEY", "OPENAI_API_KEY", "MODEL_BASE_URL", "MODEL_NAME"} {
		t.Setenv(key, "")
	}

	cfg := Load("testdata/absent.env")

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.LogDir != "logs" {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.ModelProvider != "openai" {
		t.Errorf("ModelProvider = %q", cfg.ModelProvider)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_PROVIDER", "Anthropic")
	t.Setenv("MODEL_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	t.Setenv("GRAPH_API_KEY", "graph-key")

	cfg := Load("testdata/absent.env")

	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.ModelProvider != "anthropic" {
		t.Errorf("ModelProvider = %q, want lowercase", cfg.ModelProvider)
	}
	if cfg.ModelAPIKey != "sk-fallback" {
		t.Errorf("ModelAPIKey = %q, want the OPENAI_API_KEY fallback", cfg.ModelAPIKey)
	}
	if cfg.GraphAPIKey != "graph-key" {
		t.Errorf("GraphAPIKey = %q", cfg.GraphAPIKey)
	}
}

func TestLoadIgnoresMalformedPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := Load("testdata/absent.env")
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want the default", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{Port: 8000, ModelProvider: "openai"}},
		{name: "rules provider", cfg: Config{Port: 8000, ModelProvider: "rules"}},
		{name: "zero port", cfg: Config{Port: 0, ModelProvider: "openai"}, wantErr: true},
		{name: "port too large", cfg: Config{Port: 70000, ModelProvider: "openai"}, wantErr: true},
		{name: "unknown provider", cfg: Config{Port: 8000, ModelProvider: "cohere"}, wantErr: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
