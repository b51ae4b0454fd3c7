package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/storefront/internal/models"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderColumns = []string{
	"ID", "Дата", "Имя", "Телефон", "Email", "Товар",
	"Цена", "Количество", "Сумма", "Статус", "Комментарий",
}

// Orders writes one sheet with a header row and one row per order.
func Orders(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range orderColumns {
		header.AddCell().SetString(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(o.ID))
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(o.UserName)
		row.AddCell().SetString(o.UserPhone)
		row.AddCell().SetString(o.UserEmail)
		row.AddCell().SetString(o.ProductName)
		row.AddCell().SetFloat(o.ProductPrice)
		row.AddCell().SetInt(o.Quantity)
		row.AddCell().SetFloat(o.TotalPrice)
		row.AddCell().SetString(o.Status)
		row.AddCell().SetString(o.Notes)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
