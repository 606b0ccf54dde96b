package app

import (
	"context"
	"testing"
)

func TestNewDependenciesDefaults(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("failed to build dependencies: %v", err)
	}
	t.Cleanup(deps.Close)

	if deps.Repo == nil {
		t.Error("repository must be initialized")
	}
	if deps.Inventory == nil {
		t.Error("inventory must be initialized")
	}
	if deps.Orchestrator == nil {
		t.Error("orchestrator must be initialized")
	}
	if deps.Store != nil {
		t.Error("postgres store must stay nil without a DSN")
	}
	if deps.KafkaProducer != nil {
		t.Error("kafka producer must stay nil without brokers")
	}
}

func TestInitKafkaProducerWithoutBrokers(t *testing.T) {
	producer, err := initKafkaProducer("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if producer != nil {
		t.Fatal("expected nil producer without brokers")
	}
}
