package reports

import (
	"io"

	"tailorshop/internal/domain"

	"github.com/xuri/excelize/v2"
)

const ordersSheet = "Orders"

var orderColumns = []string{
	"Order ID", "Customer", "Phone", "Garment", "Fabric", "Status",
	"Delivery date", "Price", "Deposit", "Balance", "Created at",
}

// WriteOrders renders orders as an xlsx workbook with one header row.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return err
	}
	for i, title := range orderColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ordersSheet, cell, title); err != nil {
			return err
		}
	}
	for i, o := range orders {
		if err := f.SetSheetRow(ordersSheet, rowCell(i+2), orderRow(o)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func orderRow(o domain.Order) *[]any {
	var name, phone, delivery string
	if o.Customer != nil {
		name, phone = o.Customer.Name, o.Customer.Phone
	}
	if o.DeliveryDate != nil {
		delivery = o.DeliveryDate.Format("2006-01-02")
	}
	row := []any{
		o.ID, name, phone, o.GarmentType, o.Fabric, string(o.Status), delivery,
		o.Price.InexactFloat64(), o.Deposit.InexactFloat64(), o.Price.Sub(o.Deposit).InexactFloat64(),
		o.CreatedAt.UTC().Format("2006-01-02 15:04"),
	}
	return &row
}

func rowCell(row int) string {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	return cell
}
