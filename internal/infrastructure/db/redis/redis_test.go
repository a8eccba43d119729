package redis

import (
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Addr: "cache:6379", TTL: time.Hour}.withDefaults()
	if cfg.Prefix != DefaultPrefix || cfg.Timeout != defaultTimeout || cfg.TTL != time.Hour {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	opts := cfg.options()
	if opts.Addr != "cache:6379" || opts.ReadTimeout != defaultTimeout || opts.DialTimeout != defaultTimeout {
		t.Fatalf("unexpected client options %+v", opts)
	}
}

func TestConfig_KeepsExplicitValues(t *testing.T) {
	cfg := Config{Prefix: "staging:", Timeout: time.Second, Password: "pw", DB: 2}.withDefaults()
	if cfg.Prefix != "staging:" || cfg.Timeout != time.Second {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
	if opts := cfg.options(); opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("unexpected client options %+v", opts)
	}
}
