package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestOrdersSheet(t *testing.T) {
	orders := []models.Order{
		{ID: 3, UserName: "Anna", UserPhone: "+79990000001", ProductName: "Sencha", ProductPrice: 250, Quantity: 2, TotalPrice: 500, Status: "new", CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{ID: 1, UserName: "Ivan", UserPhone: "+79990000002", ProductName: "Gaiwan", ProductPrice: 1200, Quantity: 1, TotalPrice: 1200, Status: "completed"},
	}

	var buf bytes.Buffer
	require.NoError(t, Orders(&buf, orders))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0].Cells[0].Value)
	assert.Equal(t, "Комментарий", rows[0].Cells[len(orderColumns)-1].Value)
	assert.Equal(t, "3", rows[1].Cells[0].Value)
	assert.Equal(t, "2024-05-01 12:00:00", rows[1].Cells[1].Value)
	assert.Equal(t, "Anna", rows[1].Cells[2].Value)
	assert.Equal(t, "completed", rows[2].Cells[9].Value)
}

func TestOrdersEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Orders(&buf, nil))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets[0].Rows, 1)
}
