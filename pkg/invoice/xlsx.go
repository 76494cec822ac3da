package invoice

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxSheet       = "Invoice"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// XLSXSink writes a single "Invoice" sheet.
type XLSXSink struct {
	branding Branding
	qr       QRGenerator
}

func NewXLSXSink(b Branding, qr QRGenerator) *XLSXSink {
	return &XLSXSink{branding: b, qr: defaultQR(b, qr)}
}

func (s *XLSXSink) Format() Format { return FormatXLSX }

func (s *XLSXSink) Render(inv Invoice) (*Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := [][]interface{}{
		{s.branding.BusinessName},
		{"Order Invoice"},
		nil,
		{"Client Name", inv.ClientName},
		{"Phone", inv.ClientPhone},
		{"Address", inv.ClientAddress},
		{"Date", s.branding.FormatDate(inv.Date)},
		{"Order ID", "#" + inv.Reference(6)},
		nil,
		{"Menu Name", "Price per Plate", "Quantity", "Total Amount"},
		{inv.MenuName, inv.PricePerPlate, inv.Quantity, inv.Total},
		nil,
		{"Included Items"},
	}
	for _, item := range inv.Items {
		rows = append(rows, []interface{}{item})
	}
	rows = append(rows, nil, []interface{}{s.branding.Footer})

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	for col, width := range map[string]float64{"A": 25, "B": 20, "C": 10, "D": 15} {
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if err := s.applyStyles(f); err != nil {
		return nil, err
	}
	if err := s.addPictures(f, inv); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return &Artifact{
		Filename:    Filename("Order", inv, FormatXLSX),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *XLSXSink) applyStyles(f *excelize.File) error {
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: "0F2557"}})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0F2557"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	if err := f.SetCellStyle(xlsxSheet, "A1", "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A10", "D10", header); err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "B11", "B11", amount); err != nil {
		return err
	}
	return f.SetCellStyle(xlsxSheet, "D11", "D11", amount)
}

func (s *XLSXSink) addPictures(f *excelize.File, inv Invoice) error {
	emblem, err := Emblem()
	if err != nil {
		return err
	}
	if err := f.AddPictureFromBytes(xlsxSheet, "F1", &excelize.Picture{
		Extension: ".png",
		File:      emblem,
		Format:    &excelize.GraphicOptions{ScaleX: 0.4, ScaleY: 0.4},
	}); err != nil {
		return fmt.Errorf("failed to add emblem: %w", err)
	}

	code, err := s.qr.Generate(inv)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	if err := f.AddPictureFromBytes(xlsxSheet, "F10", &excelize.Picture{
		Extension: ".png",
		File:      code,
		Format:    &excelize.GraphicOptions{ScaleX: 0.4, ScaleY: 0.4},
	}); err != nil {
		return fmt.Errorf("failed to add QR code: %w", err)
	}
	return nil
}
