package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Algorithms", want: "algorithms"},
		{name: "with space and year", in: "Fall 2025", want: "fall-2025"},
		{name: "punctuation collapsed", in: "Data Structures & Algorithms!", want: "data-structures-algorithms"},
		{name: "leading and trailing junk", in: "  --Operating Systems--  ", want: "operating-systems"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
