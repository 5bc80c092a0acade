package metric

import "testing"

func TestNewMeasurement(t *testing.T) {
	m := NewMeasurement("order.value", 42.5, map[string]string{"channel": "web"})
	if !m.HasValue() || *m.Value != 42.5 {
		t.Fatalf("unexpected value: %v", m.Value)
	}
	if m.Tag("channel") != "web" {
		t.Fatalf("unexpected tag: %q", m.Tag("channel"))
	}
}

func TestNewEventHasNoValue(t *testing.T) {
	m := NewEvent("customer.registered", nil)
	if m.HasValue() {
		t.Fatalf("expected bare event")
	}
}

func TestNewEventClonesTags(t *testing.T) {
	tags := map[string]string{"channel": "web"}
	m := NewEvent("customer.registered", tags)
	tags["channel"] = "pos"
	if m.Tag("channel") != "web" {
		t.Fatalf("tags shared with caller map")
	}
}

func TestWithMetadataLeavesOriginalUntouched(t *testing.T) {
	orig := NewEvent("customer.registered", map[string]string{"channel": "web"})
	md := map[string]string{"app_version": "6.5"}
	enriched := orig.WithMetadata(md)

	if orig.Metadata != nil {
		t.Fatalf("original mutated")
	}
	if enriched.Metadata["app_version"] != "6.5" {
		t.Fatalf("metadata not attached")
	}

	md["app_version"] = "7.0"
	if enriched.Metadata["app_version"] != "6.5" {
		t.Fatalf("metadata shared with caller map")
	}
}
