package generic_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeoff-tracker/generic"
)

func TestAmount_ExactHourArithmetic(t *testing.T) {
	remaining := generic.Hours(116.25).Sub(generic.Hours(23.25))
	assert.True(t, remaining.Value.Equal(decimal.RequireFromString("93")))
	assert.Equal(t, "93.00", remaining.Display())

	over := generic.Hours(15.5).Sub(generic.Hours(23.25))
	assert.True(t, over.IsNegative())
	assert.Equal(t, "-7.75", over.Display())
}

func TestAmount_InDays(t *testing.T) {
	hpd := decimal.RequireFromString("7.75")

	tests := []struct {
		hours float64
		want  string
	}{
		{116.25, "15.00"},
		{93, "12.00"},
		{23.25, "3.00"},
		{10, "1.29"},
		{-7.75, "-1.00"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		days := generic.Hours(tt.hours).InDays(hpd)
		assert.Equal(t, generic.UnitDays, days.Unit)
		assert.Equal(t, tt.want, days.Rounded().Display(), "hours=%v", tt.hours)
	}
}

func TestAmount_InDays_LeavesSourceUntouched(t *testing.T) {
	h := generic.Hours(10)
	_ = h.InDays(decimal.RequireFromString("7.75"))
	assert.Equal(t, generic.UnitHours, h.Unit)
	assert.Equal(t, "10.00", h.Display())
}

func TestParseHours(t *testing.T) {
	h, err := generic.ParseHours("23.25")
	require.NoError(t, err)
	assert.Equal(t, "23.25", h.Display())

	h, err = generic.ParseHours(" 8 ")
	require.NoError(t, err)
	assert.Equal(t, "8.00", h.Display())

	_, err = generic.ParseHours("")
	assert.ErrorIs(t, err, generic.ErrMissingHours)

	_, err = generic.ParseHours("eight")
	assert.ErrorIs(t, err, generic.ErrInvalidHours)

	_, err = generic.ParseHours("-1")
	assert.ErrorIs(t, err, generic.ErrNegativeHours)
}

func TestParseHoursOrZero(t *testing.T) {
	h, err := generic.ParseHoursOrZero("")
	require.NoError(t, err)
	assert.True(t, h.IsZero())

	_, err = generic.ParseHoursOrZero("abc")
	assert.ErrorIs(t, err, generic.ErrInvalidHours)

	_, err = generic.ParseHoursOrZero("1e400")
	assert.ErrorIs(t, err, generic.ErrInvalidHours)
}

func TestParseHours_UpperBound(t *testing.T) {
	// GIVEN: Values around MaxHours, plus one that overflows float64
	h, err := generic.ParseHours(generic.MaxHours.String())
	require.NoError(t, err)
	assert.True(t, h.Value.Equal(generic.MaxHours))

	_, err = generic.ParseHours("100000.01")
	assert.ErrorIs(t, err, generic.ErrInvalidHours)

	// THEN: Values that would not fit a JSON number are refused
	_, err = generic.ParseHours("1e400")
	assert.ErrorIs(t, err, generic.ErrInvalidHours)
}

func TestIsValidation(t *testing.T) {
	wrapped := &generic.FieldError{Field: "hours", Err: generic.ErrInvalidHours}
	assert.True(t, generic.IsValidation(wrapped))
	assert.Equal(t, "hours: invalid hours", wrapped.Error())
	assert.True(t, generic.IsValidation(generic.ErrInvertedRange))
	assert.False(t, generic.IsValidation(errors.New("disk on fire")))
}
