package models

import "testing"

func TestContentTypeIsValid(t *testing.T) {
	if !ContentTypeMovie.IsValid() || !ContentTypeTV.IsValid() {
		t.Error("Known content types should be valid")
	}
	if ContentType("documentary").IsValid() || ContentType("").IsValid() {
		t.Error("Unknown content types should be invalid")
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPlanned, StatusWatching, StatusCompleted, StatusDropped, StatusOnHold} {
		if !s.IsValid() {
			t.Errorf("Status %q should be valid", s)
		}
	}
	if Status("paused").IsValid() || Status("").IsValid() {
		t.Error("Unknown statuses should be invalid")
	}
}

func TestStringListNilStoresEmptyArray(t *testing.T) {
	var l StringList
	v, err := l.Value()
	if err != nil {
		t.Fatalf("Failed to serialize nil list: %v", err)
	}
	// Genre predicates probe the column as JSON, so nil must not become NULL
	if v != "[]" {
		t.Errorf("Expected empty JSON array, got %v", v)
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan(`["Action","Sci-Fi"]`); err != nil {
		t.Fatalf("Failed to scan: %v", err)
	}
	if len(l) != 2 || !l.Contains("Action") || l.Contains("Drama") {
		t.Errorf("Scan result mismatch: %v", l)
	}

	var empty StringList
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scanning NULL should not error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty list from NULL, got %v", empty)
	}

	if err := l.Scan(42); err == nil {
		t.Error("Expected error for unsupported column type")
	}
}
