package sector

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func strPtr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		sector *string
		want   *string
	}{
		{name: "technology", sector: strPtr("Technology"), want: strPtr("XLK")},
		{name: "real estate", sector: strPtr("Real Estate"), want: strPtr("XLRE")},
		{name: "communication services", sector: strPtr("Communication Services"), want: strPtr("XLC")},
		{name: "absent sector", sector: nil, want: nil},
		{name: "unknown sector", sector: strPtr("Crypto"), want: nil},
		{name: "case sensitive", sector: strPtr("technology"), want: nil},
		{name: "empty string", sector: strPtr(""), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.sector)
			if tt.want == nil {
				assert.Equal(t, true, got == nil)
				return
			}
			assert.NotEqual(t, true, got == nil)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestSectorsCoversElevenEntries(t *testing.T) {
	sectors := Sectors()
	assert.Equal(t, 11, len(sectors))

	for _, s := range sectors {
		s := s
		assert.NotEqual(t, true, Resolve(&s) == nil)
	}
}
