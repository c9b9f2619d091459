// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "credit-scoring", cfg.App.Name)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "configs/cutoffs.json", cfg.Scoring.CutoffsFile)
	assert.Equal(t, 60, cfg.RateLimit.Requests)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "predictions", cfg.Database.Elasticsearch.Index)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9000
	cfg.Logging.Level = "debug"
	applyDefaults(cfg)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(cfg *Config) {}, wantErr: false},
		{
			name:    "port out of range",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "audit store without postgres host",
			mutate:  func(cfg *Config) { cfg.Audit.StoreEnabled = true },
			wantErr: true,
		},
		{
			name: "audit store with postgres host",
			mutate: func(cfg *Config) {
				cfg.Audit.StoreEnabled = true
				cfg.Database.Postgres.Host = "localhost"
			},
			wantErr: false,
		},
		{
			name:    "rate limit without redis address",
			mutate:  func(cfg *Config) { cfg.RateLimit.Enabled = true },
			wantErr: true,
		},
		{
			name:    "alerts without topic",
			mutate:  func(cfg *Config) { cfg.Alerts.Enabled = true },
			wantErr: true,
		},
		{
			name:    "indexing without addresses",
			mutate:  func(cfg *Config) { cfg.Audit.IndexEnabled = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8081}
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr())
}
