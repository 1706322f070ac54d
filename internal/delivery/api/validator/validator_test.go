package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"gt=0"`
}

type checkout struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Lines []line `json:"lines" validate:"min=1,dive"`
}

func TestValidate(t *testing.T) {
	t.Parallel()

	v := New()

	tests := []struct {
		name   string
		input  checkout
		fields map[string]string
	}{
		{
			name: "valid",
			input: checkout{
				Phone: "9876543210",
				Lines: []line{{ProductID: uuid.New(), Price: decimal.RequireFromString("0.5")}},
			},
		},
		{
			name:  "empty lines",
			input: checkout{Phone: "9876543210"},
			fields: map[string]string{
				"lines": "lines must contain at least 1 item(s)",
			},
		},
		{
			name: "nested failures use json names",
			input: checkout{
				Phone: "98765abcde",
				Lines: []line{{Price: decimal.Zero}},
			},
			fields: map[string]string{
				"phone":              "phone must contain digits only",
				"lines[0].productId": "lines[0].productId is required",
				"lines[0].price":     "lines[0].price must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)

				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.fields, validationErr.FieldMessages())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := New().Validate(checkout{Phone: "123"})

	assert.EqualError(t, err, "phone must be exactly 10 characters; lines must contain at least 1 item(s)")
}
