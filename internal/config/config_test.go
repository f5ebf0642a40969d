package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.RemoteAPI.Timeout != 0 {
		t.Errorf("remote_api.timeout = %v, want 0", cfg.RemoteAPI.Timeout)
	}
	if cfg.RemoteAPI.TypeDialect != "ondemand" {
		t.Errorf("remote_api.type_dialect = %q", cfg.RemoteAPI.TypeDialect)
	}
	if cfg.Submission.PlanExerciseTypeRequired {
		t.Error("plan_exercise_type_required defaults to true")
	}
	if cfg.S3.PresignExpiry != 15*time.Minute || cfg.JWT.Expiration != 12*time.Hour {
		t.Errorf("durations = %v %v", cfg.S3.PresignExpiry, cfg.JWT.Expiration)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Errorf("Validate = %v", err)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
remote_api:
  base_url: https://api.example.com/api
  timeout: 30s
  type_dialect: on_demand
submission:
  plan_exercise_type_required: true
jwt:
  secret: from-file
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("MEDIA_FFPROBE_PATH", "/usr/local/bin/ffprobe")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("jwt.secret = %q, want env override", cfg.JWT.Secret)
	}
	if cfg.Media.FFProbePath != "/usr/local/bin/ffprobe" {
		t.Errorf("media.ffprobe_path = %q", cfg.Media.FFProbePath)
	}
	if cfg.RemoteAPI.Timeout != 30*time.Second || cfg.RemoteAPI.TypeDialect != "on_demand" {
		t.Errorf("remote_api = %+v", cfg.RemoteAPI)
	}
	if !cfg.Submission.PlanExerciseTypeRequired {
		t.Error("plan_exercise_type_required not read")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
}
