package venue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1,000"},
		{250000, "250,000"},
		{1000000, "1,000,000"},
		{2150000, "2,150,000"},
		{1234567.4, "1,234,567"},
		{-750000, "-750,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in), "Money(%v)", tt.in)
	}
}
