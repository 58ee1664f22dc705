package storage

import (
	"testing"
	"time"
)

func TestSnapshotKey(t *testing.T) {
	now := time.Date(2024, 3, 1, 13, 4, 5, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		prefix string
		want   string
	}{
		{"staging", "staging/index-20240301T120405Z.db"},
		{"/exports/forum/", "exports/forum/index-20240301T120405Z.db"},
		{"", "index-20240301T120405Z.db"},
	}

	for _, tt := range tests {
		if got := SnapshotKey(tt.prefix, now); got != tt.want {
			t.Fatalf("SnapshotKey(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}
