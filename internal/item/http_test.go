package item

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Wire field names are the stable contract: unset nullable fields must
// render as null, never as zero values.
func TestMarshalItemWireShape(t *testing.T) {
	target := int64(5)
	it := Item{
		ID:        uuid.New(),
		ListID:    uuid.New(),
		Text:      "laps",
		Type:      TypeCounter,
		Counter:   &CounterState{Value: 3, Target: &target},
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}

	raw, err := json.Marshal(marshalItem(it))
	if err != nil {
		t.Fatalf("marshal item: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal item: %v", err)
	}

	for _, field := range []string{
		"id", "bucket_list_id", "text", "type", "description", "parent_item_id",
		"is_checked", "checked_by", "checked_by_username", "checked_at",
		"counter_value", "counter_target", "created_at",
	} {
		if _, ok := decoded[field]; !ok {
			t.Fatalf("expected field %q in wire shape", field)
		}
	}

	for _, nullField := range []string{"description", "parent_item_id", "checked_by", "checked_by_username", "checked_at"} {
		if string(decoded[nullField]) != "null" {
			t.Fatalf("expected %q to be null, got %s", nullField, decoded[nullField])
		}
	}

	if string(decoded["counter_value"]) != "3" {
		t.Fatalf("expected counter_value 3, got %s", decoded["counter_value"])
	}
	if string(decoded["counter_target"]) != "5" {
		t.Fatalf("expected counter_target 5, got %s", decoded["counter_target"])
	}
}
