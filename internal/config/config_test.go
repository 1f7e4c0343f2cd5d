package config

import (
	"testing"
	"time"

	"github.com/openclinic/clinic-ops/internal/triage"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SLA_LAB_DAYS", "")
	t.Setenv("NORMAL_IMAGING_PHRASES", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SLALabDays != 7 {
		t.Fatalf("expected default lab SLA, got %d", cfg.SLALabDays)
	}
	if cfg.KPICacheTTL != time.Minute {
		t.Fatalf("expected default KPI cache TTL, got %s", cfg.KPICacheTTL)
	}
	if len(cfg.NormalImagingPhrases) == 0 {
		t.Fatal("expected fallback normal-phrase list")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://user@host/clinic")
	t.Setenv("SLA_LAB_DAYS", "2")
	t.Setenv("SLA_XRAY_DAYS", "1")
	t.Setenv("SLA_ULTRASOUND_DAYS", "4")
	t.Setenv("NORMAL_IMAGING_PHRASES", "no abnormality detected, normal scan ,")
	t.Setenv("KPI_CACHE_TTL", "5m")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://user@host/clinic" {
		t.Fatalf("unexpected database url %s", cfg.DatabaseURL)
	}
	if got := len(cfg.NormalImagingPhrases); got != 2 {
		t.Fatalf("expected 2 phrases, got %d: %v", got, cfg.NormalImagingPhrases)
	}
	if cfg.KPICacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache TTL, got %s", cfg.KPICacheTTL)
	}

	sla := cfg.SLATable()
	if sla[triage.KindLab] != 2 || sla[triage.KindXray] != 1 || sla[triage.KindUltrasound] != 4 {
		t.Fatalf("unexpected SLA table %v", sla)
	}
}
