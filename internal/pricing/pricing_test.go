package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	total := Total(decimal.NewFromInt(55), decimal.NewFromInt(12000000))
	assert.True(t, total.Equal(decimal.NewFromInt(660000000)))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1 000"},
		{"12000000", "12 000 000"},
		{"660000000", "660 000 000"},
		{"1234567.49", "1 234 567"},
		{"1234567.5", "1 234 568"},
		{"-45000", "-45 000"},
		{"-999", "-999"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormattedFloorPlanTotal(t *testing.T) {
	assert.Equal(t, "660 000 000", FormatAmount(Total(decimal.NewFromInt(55), decimal.NewFromInt(12000000))))
	assert.Equal(t, "45 780 000", FormatAmount(Total(decimal.RequireFromString("38.15"), decimal.NewFromInt(1200000))))
}
