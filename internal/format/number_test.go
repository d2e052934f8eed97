package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestThousands(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "0"},
		{"5250", "5,250"},
		{"1,000", "1,000"},
		{"1000000", "1,000,000"},
		{"-2500", "-2,500"},
		{"1234.5678", "1,234.568"},
		{"12 gold", "12"},
		{"abc", "0"},
		{"1.2.3", "1.2.3"},
		{"-", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Thousands(tt.in))
		})
	}
}

func TestThousandsIn_OtherLocale(t *testing.T) {
	p := message.NewPrinter(language.German)
	assert.Equal(t, "5.250", ThousandsIn(p, "5250"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,000", 1000},
		{"6,250", 6250},
		{"", 0},
		{"abc", 0},
		{"-", 0},
		{"12.5.1", 12.5},
		{"5-3", 5},
		{"-40", -40},
		{".5", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "", FormatAmount(0))
	assert.Equal(t, "5250", FormatAmount(5250))
	assert.Equal(t, "-12.5", FormatAmount(-12.5))
}

func TestPositive(t *testing.T) {
	assert.True(t, Positive("25"))
	assert.True(t, Positive(" 3 coins"))
	assert.False(t, Positive("0"))
	assert.False(t, Positive("-4"))
	assert.False(t, Positive("none"))
	assert.False(t, Positive(""))
	assert.True(t, Positive("1,000"))
}
