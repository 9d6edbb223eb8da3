package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-14")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2024-03-14" {
		t.Errorf("Expected 2024-03-14, got %s", d)
	}

	for _, input := range []string{"2024-03-14junk", "2024-03-14T10:00:00Z", "2024-3-14", ""} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("Expected ParseDate(%q) to fail", input)
		}
	}
}

func TestDate_UnmarshalJSONRejectsTimestamp(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-14T10:00:00Z"`), &d); err == nil {
		t.Fatalf("Expected a full timestamp to be rejected, got %s", d)
	}
	if err := json.Unmarshal([]byte(`"2024-03-14"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d.String() != "2024-03-14" {
		t.Errorf("Expected 2024-03-14, got %s", d)
	}
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"day string", "2024-03-14", "2024-03-14"},
		{"timestamp string", "2024-03-14 00:00:00+00:00", "2024-03-14"},
		{"bytes", []byte("2024-03-14T00:00:00Z"), "2024-03-14"},
		{"time", time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC), "2024-03-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, d)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("Expected scanning an int to fail")
	}
}
