package views

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const historySheet = "Reservations"

var historyHeader = []string{
	"Reservation", "Status", "Guest", "Room", "Room Type",
	"Check-in", "Check-out", "Nights", "Adults", "Children", "Total",
}

var historyColumnWidths = []float64{14, 13, 24, 8, 14, 12, 12, 8, 8, 9, 12}

// ExportHistory writes rows to an XLSX workbook with a frozen, styled header.
func ExportHistory(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(historySheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(historyHeader), 1)
	if err := f.SetCellStyle(historySheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	for i, w := range historyColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(historySheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.ReservationID,
			string(r.Status),
			orMissing(r.GuestName, r.CustomerNotFound),
			orMissing(r.RoomNumber, r.RoomNotFound),
			orMissing(r.RoomTypeName, r.RoomTypeNotFound),
			r.CheckIn.Format("2006-01-02"),
			r.CheckOut.Format("2006-01-02"),
			r.Nights,
			r.Adults,
			r.Children,
			float64(r.TotalAmount) / 100,
		}
		if err := f.SetSheetRow(historySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		top, _ := excelize.CoordinatesToCellName(len(historyHeader), 2)
		bottom, _ := excelize.CoordinatesToCellName(len(historyHeader), len(rows)+1)
		if err := f.SetCellStyle(historySheet, top, bottom, moneyStyle); err != nil {
			return nil, fmt.Errorf("style totals: %w", err)
		}
	}

	if err := f.SetPanes(historySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func orMissing(v string, missing bool) string {
	if missing {
		return "(not found)"
	}
	return v
}
