package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected backend url %q", cfg.Backend.BaseURL)
	}
	if cfg.Session.DurableTTL != 720*time.Hour {
		t.Fatalf("unexpected durable ttl %s", cfg.Session.DurableTTL)
	}
	if cfg.Kafka.OrdersTopic != "orders.confirmed" {
		t.Fatalf("unexpected kafka config %+v", cfg.Kafka)
	}
	if cfg.Redis.Prefix != "storefront:" || cfg.Mongo.Timeout != 10*time.Second {
		t.Fatalf("unexpected storage config %+v / %+v", cfg.Redis, cfg.Mongo)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("CREDENTIAL_JWT_SECRET", "s3cret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" || cfg.Backend.Timeout != 3*time.Second || cfg.CredentialJWTSecret != "s3cret" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if got := cfg.Kafka.BrokerList(); len(got) != 2 || got[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", got)
	}
}
