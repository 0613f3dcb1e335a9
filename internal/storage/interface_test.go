package storage

import (
	"errors"
	"testing"
)

func TestCheckQuota(t *testing.T) {
	tests := []struct {
		name     string
		existing int64
		incoming int64
		quota    int64
		wantErr  bool
	}{
		{"unlimited", 1 << 40, 1 << 40, 0, false},
		{"negative is unlimited", 10, 10, -1, false},
		{"fits", 4, 6, 10, false},
		{"over by one", 5, 6, 10, true},
		{"empty write", 10, 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckQuota(tt.existing, tt.incoming, tt.quota)
			if tt.wantErr && !errors.Is(err, ErrQuotaExceeded) {
				t.Errorf("expected ErrQuotaExceeded, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
