package models

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	cet := time.FixedZone("CET", 2*60*60)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"afternoon", time.Date(2023, 8, 1, 13, 14, 37, 0, time.UTC), "08/01/23 13:14:37"},
		{"hour without leading zero", time.Date(2023, 2, 9, 9, 5, 3, 0, time.UTC), "02/09/23 9:05:03"},
		{"midnight", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "12/31/24 0:00:00"},
		{"converted to utc", time.Date(2023, 8, 2, 1, 30, 0, 0, cet), "08/01/23 23:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.in); got != tt.want {
				t.Fatalf("FormatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}
