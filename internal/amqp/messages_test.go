package amqp

import (
	"testing"
	"time"
)

func TestNewEntrySyncMessage(t *testing.T) {
	msg := NewEntrySyncMessage(12345, 2)

	if msg.ID != 12345 {
		t.Errorf("ID = %d, want 12345", msg.ID)
	}
	if msg.Version != 2 {
		t.Errorf("Version = %d, want 2", msg.Version)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestEntrySyncMessage_JSON(t *testing.T) {
	msg := &EntrySyncMessage{
		ID:        7,
		Version:   1,
		Timestamp: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	parsed, err := EntrySyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("EntrySyncMessageFromJSON: %v", err)
	}
	if parsed.ID != msg.ID || parsed.Version != msg.Version || !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}

func TestEntrySyncMessage_InvalidJSON(t *testing.T) {
	if _, err := EntrySyncMessageFromJSON([]byte(`{"id": "not_a_number"}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
