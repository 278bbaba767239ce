package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Age     int      `json:"age" validate:"gte=18,lte=100"`
	Email   string   `json:"email" validate:"required,email"`
	Rate    *float64 `json:"rate,omitempty" validate:"omitempty,gt=0"`
	Ignored string   `json:"-"`
}

func TestValidationMessages(t *testing.T) {
	v := NewValidator()
	negative := -0.1

	err := v.Struct(sample{Age: 12, Email: "nope", Rate: &negative})
	require.Error(t, err)

	msgs := ValidationMessages(err)
	assert.Equal(t, map[string]string{
		"age":   "must be greater than or equal to 18",
		"email": "value is not a valid email address",
		"rate":  "must be greater than 0",
	}, msgs)
}

func TestValidationMessages_Valid(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(sample{Age: 40, Email: "athlete@example.com"}))
	assert.Nil(t, ValidationMessages(errors.New("boom")))
}
