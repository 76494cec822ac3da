package invoice

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(inv Invoice) ([]byte, error)
}

// DefaultQRGenerator encodes a short order reference as a 256px PNG.
type DefaultQRGenerator struct {
	BusinessName string
}

func (g DefaultQRGenerator) Generate(inv Invoice) ([]byte, error) {
	qrData := fmt.Sprintf("%s|Order #%s|%s|%.2f", g.BusinessName, inv.Reference(6), inv.ClientName, inv.Total)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

func defaultQR(b Branding, qr QRGenerator) QRGenerator {
	if qr == nil {
		return DefaultQRGenerator{BusinessName: b.BusinessName}
	}
	return qr
}

// NewSinks returns the PDF, DOCX and XLSX sinks sharing one branding.
func NewSinks(b Branding, qr QRGenerator) []Sink {
	return []Sink{NewPDFSink(b, qr), NewDocxSink(b, qr), NewXLSXSink(b, qr)}
}
