package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	SKU   string          `json:"sku" validate:"required,max=10"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
	Kind  string          `json:"kind" validate:"omitempty,oneof=vendor internal customer"`
}

func TestStruct_Valido(t *testing.T) {
	err := Struct(sample{SKU: "A-1", Price: decimal.NewFromInt(3), Kind: "internal"})
	assert.NoError(t, err)
}

func TestStruct_ErroresPorCampoJSON(t *testing.T) {
	err := Struct(sample{Price: decimal.NewFromInt(-1), Kind: "loss"})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "es requerido", verrs["sku"])
	assert.Contains(t, verrs["price"], "mayor o igual")
	assert.Contains(t, verrs["kind"], "vendor internal customer")
	assert.Contains(t, err.Error(), "sku es requerido")
}
