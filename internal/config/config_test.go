package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			APIKey:     "test-key",
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
		},
		Generation: GenerationConfig{
			APIKey: "test-key",
			Model:  "gpt-4o-mini",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingEmbeddingModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_MissingDimensions(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Dimensions = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding dimensions")
	}
}

func TestValidate_MissingGenerationModel(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Model = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing generation model")
	}
}

func TestValidate_VariantTopKExceedsDefault(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultTopK = 5
	cfg.Search.VariantTopK = 10

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when variant_top_k exceeds default_top_k")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Search.IndexName != "recall:content:idx" {
		t.Errorf("expected IndexName='recall:content:idx', got %q", cfg.Search.IndexName)
	}
	if cfg.Search.KeyPrefix != "recall:content:" {
		t.Errorf("expected KeyPrefix='recall:content:', got %q", cfg.Search.KeyPrefix)
	}
	if cfg.Search.DefaultTopK != 10 {
		t.Errorf("expected DefaultTopK=10, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Search.VariantTopK != 5 {
		t.Errorf("expected VariantTopK=5, got %d", cfg.Search.VariantTopK)
	}
	if cfg.Search.MaxVariants != 5 {
		t.Errorf("expected MaxVariants=5, got %d", cfg.Search.MaxVariants)
	}
	if cfg.Search.MaxResults != 10 {
		t.Errorf("expected MaxResults=10, got %d", cfg.Search.MaxResults)
	}
	if cfg.Generation.MaxTokens != 500 {
		t.Errorf("expected MaxTokens=500, got %d", cfg.Generation.MaxTokens)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Search: SearchConfig{
			IndexName:   "custom:idx",
			KeyPrefix:   "custom:",
			DefaultTopK: 20,
			VariantTopK: 8,
			MaxVariants: 3,
			MaxResults:  15,
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.IndexName != "custom:idx" {
		t.Errorf("expected IndexName='custom:idx', got %q", cfg.Search.IndexName)
	}
	if cfg.Search.DefaultTopK != 20 {
		t.Errorf("expected DefaultTopK=20, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Search.MaxVariants != 3 {
		t.Errorf("expected MaxVariants=3, got %d", cfg.Search.MaxVariants)
	}
}
