package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"OPENAI_API_KEY", "WHISPER_BASE_URL", "WHISPER_MODEL", "WHISPER_LANGUAGE",
		"MONGO_URI", "MONGO_DB", "MONGO_COLLECTION", "POSTGRES_DSN",
		"OUTPUT_DIR", "WORKERS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Whisper.Model != "whisper-1" {
		t.Errorf("Expected default model whisper-1, got %q", cfg.Whisper.Model)
	}
	if cfg.Store.MongoDB != "handgrabber" {
		t.Errorf("Expected default Mongo DB handgrabber, got %q", cfg.Store.MongoDB)
	}
	if cfg.Store.MongoCollection != "episode_results" {
		t.Errorf("Expected default collection episode_results, got %q", cfg.Store.MongoCollection)
	}
	if cfg.OutputDir != "./output" {
		t.Errorf("Expected default output dir ./output, got %q", cfg.OutputDir)
	}
	if cfg.Workers != 2 {
		t.Errorf("Expected default 2 workers, got %d", cfg.Workers)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("WHISPER_MODEL", "whisper-large")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("OUTPUT_DIR", "/data/out")
	t.Setenv("WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Whisper.APIKey != "sk-test" {
		t.Errorf("Expected API key from env, got %q", cfg.Whisper.APIKey)
	}
	if cfg.Whisper.Model != "whisper-large" {
		t.Errorf("Expected model override, got %q", cfg.Whisper.Model)
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Expected Mongo URI from env, got %q", cfg.Store.MongoURI)
	}
	if cfg.OutputDir != "/data/out" {
		t.Errorf("Expected output dir override, got %q", cfg.OutputDir)
	}
	if cfg.Workers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.Workers)
	}
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("WORKERS", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for non-numeric WORKERS")
	}
}
