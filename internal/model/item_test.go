package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalories(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "plain", in: "1200", want: 1200},
		{name: "surrounding blanks", in: "  300 ", want: 300},
		{name: "trailing unit", in: "300kcal", want: 300},
		{name: "explicit plus", in: "+15", want: 15},
		{name: "negative", in: "-20", want: -20},
		{name: "zero", in: "0", want: 0},
		{name: "hex prefix", in: "0x10", want: 16},
		{name: "upper hex prefix", in: "0XfF", want: 255},
		{name: "negative hex", in: "-0x1a", want: -26},
		{name: "hex stops at non-hex", in: "0x1g", want: 1},
		{name: "leading zeros stay decimal", in: "010", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCalories(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCalories_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "-", "+x", "kcal300", "0x", "0xzz"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCalories(in)
			assert.ErrorIs(t, err, ErrInvalidCalories)
		})
	}
}

func TestParseCalories_Overflow(t *testing.T) {
	_, err := ParseCalories("99999999999999999999999")
	assert.ErrorIs(t, err, ErrInvalidCalories)
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0, Total(nil))
	assert.Equal(t, 450, Total([]Item{
		{ID: 0, Name: "Eggs", Calories: 300},
		{ID: 1, Name: "Toast", Calories: 150},
	}))
}
