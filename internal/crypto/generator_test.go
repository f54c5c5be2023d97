package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestRedemptionCode(t *testing.T) {
	tests := []struct {
		name    string
		groups  int
		wantErr error
	}{
		{name: "single group", groups: 1},
		{name: "two groups", groups: 2},
		{name: "maximum groups", groups: MaxCodeGroups},
		{name: "zero groups", groups: 0, wantErr: ErrTooFewGroups},
		{name: "too many groups", groups: 9, wantErr: ErrTooManyGroups},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := RedemptionCode(tt.groups)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RedemptionCode(%d) error = %v, want %v", tt.groups, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			parts := strings.Split(code, "-")
			if parts[0] != "PF" {
				t.Errorf("code %q missing PF prefix", code)
			}
			if len(parts) != tt.groups+1 {
				t.Fatalf("code %q has %d groups, want %d", code, len(parts)-1, tt.groups)
			}
			for _, group := range parts[1:] {
				if len(group) != CodeGroupLength {
					t.Errorf("group %q in %q has length %d, want %d", group, code, len(group), CodeGroupLength)
				}
				for _, ch := range group {
					if !strings.ContainsRune(codeChars, ch) {
						t.Errorf("code %q contains disallowed character %q", code, ch)
					}
				}
			}
		})
	}
}

func TestRedemptionCodeUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := RedemptionCode(2)
		if err != nil {
			t.Fatalf("RedemptionCode: %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}
