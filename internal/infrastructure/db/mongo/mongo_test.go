package mongo

import (
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{URI: "mongodb://db:27017", Database: "coda_bean"}.withDefaults()
	if cfg.Timeout != defaultTimeout || cfg.IndexTimeout != defaultIndexTimeout || cfg.AppName != defaultAppName {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	cfg = Config{Timeout: 2 * time.Second, AppName: "worker"}.withDefaults()
	if cfg.Timeout != 2*time.Second || cfg.AppName != "worker" {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
}
