package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

func TestGenerateMoveSlip(t *testing.T) {
	done := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	move := &dto.MoveResponse{
		ID: 42, Reference: "MV-00042", ExternalReference: "PO-991",
		ProductSKU: "LAP-01", ProductName: "Laptop", SourceName: "Partners/Vendors", DestName: "WH/Stock",
		Quantity: decimal.NewFromInt(5), Type: "receipt", Status: "done",
		ScheduledAt: done, CreatedAt: done, DoneAt: &done,
	}
	out, err := NewMarotoSlipGenerator().GenerateMoveSlip(move)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateMoveSlip_Nil(t *testing.T) {
	_, err := NewMarotoSlipGenerator().GenerateMoveSlip(nil)
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "—", formatDate(time.Time{}))
	assert.Equal(t, "04/03/2025 10:30", formatDate(time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, "x", nonEmpty("", "x"))
}
