package invoice

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

// PDFSink lays out an A4 invoice. Core fonts cannot carry the rupee sign,
// so amounts are written with "Rs".
type PDFSink struct {
	branding Branding
	qr       QRGenerator
}

func NewPDFSink(b Branding, qr QRGenerator) *PDFSink {
	return &PDFSink{branding: b, qr: defaultQR(b, qr)}
}

func (s *PDFSink) Format() Format { return FormatPDF }

func (s *PDFSink) Render(inv Invoice) (*Artifact, error) {
	emblem, err := Emblem()
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Invoice #"+inv.Reference(6)), false)
	pdf.SetCreator(tr(s.branding.BusinessName), false)
	pdf.SetAutoPageBreak(true, 30)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-22)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, tr(s.branding.Footer), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("emblem", imgOpts, bytes.NewReader(emblem))
	pdf.ImageOptions("emblem", 15, 10, 30, 30, false, imgOpts, 0, "")

	code, err := s.qr.Generate(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(code))
	pdf.ImageOptions("qr", 170, 10, 30, 30, false, imgOpts, 0, "")

	// header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(15, 37, 87)
	pdf.Text(55, 20, tr(s.branding.BusinessName))
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(55, 28, tr(s.branding.Tagline))

	pdf.SetDrawColor(212, 175, 55)
	pdf.SetLineWidth(1.5)
	pdf.Line(10, 45, 200, 45)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(10, 58, "INVOICE")

	// client block
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(50, 50, 50)
	pdf.Text(10, 68, tr("Client: "+inv.ClientName))
	pdf.Text(10, 75, tr("Phone: "+orNA(inv.ClientPhone)))
	addr := pdf.SplitLines([]byte(tr("Address: "+orNA(inv.ClientAddress))), 90)
	for i, line := range addr {
		pdf.Text(10, 82+float64(i)*5, string(line))
	}
	pdf.Text(140, 68, "Date: "+s.branding.FormatDate(inv.Date))
	pdf.Text(140, 75, tr("Order ID: #"+inv.Reference(6)))

	tableY := math.Max(95, 82+float64(len(addr))*5+10)
	pdf.SetXY(10, tableY)

	widths := []float64{80, 40, 30, 40}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(15, 37, 87)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.2)
	for i, h := range []string{"Menu Package", "Price/Plate", "Qty", "Total"} {
		pdf.CellFormat(widths[i], 10, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetX(10)
	row := []string{
		tr(inv.MenuName),
		FormatAmount("Rs ", inv.PricePerPlate),
		fmt.Sprintf("%d", inv.Quantity),
		FormatAmount("Rs ", inv.Total),
	}
	for i, v := range row {
		align := "C"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 12, v, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	// included items, paginated by the auto page break
	pdf.Ln(10)
	pdf.SetX(14)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(15, 37, 87)
	pdf.CellFormat(0, 8, "Included Menu Items:", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	if len(inv.Items) == 0 {
		pdf.SetX(14)
		pdf.CellFormat(180, 8, "No items selected", "", 1, "L", false, 0, "")
	}
	for _, item := range inv.Items {
		pdf.SetX(14)
		pdf.CellFormat(180, 8, tr(item), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return &Artifact{
		Filename:    Filename("Invoice", inv, FormatPDF),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
