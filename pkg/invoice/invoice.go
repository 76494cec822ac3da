// Package invoice renders a confirmed catering order into downloadable
// documents: a WordprocessingML file, a spreadsheet and a PDF.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
)

// DateLayout is the day-first local date used on documents and in reports.
const DateLayout = "02/01/2006"

// Invoice is the document-facing view of an order.
type Invoice struct {
	Number        string
	ClientName    string
	ClientPhone   string
	ClientAddress string
	MenuName      string
	PricePerPlate float64
	Quantity      int
	Total         float64
	Items         []string
	Date          time.Time
}

// Artifact is a rendered document ready to be offered as a download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Sink turns an invoice into one document format.
type Sink interface {
	Format() Format
	Render(inv Invoice) (*Artifact, error)
}

type Branding struct {
	BusinessName   string
	Tagline        string
	Footer         string
	CurrencySymbol string
	Location       *time.Location
}

func DefaultBranding() Branding {
	return Branding{
		BusinessName:   "Lakshmi Caterings & Events",
		Tagline:        "Professional Catering Services",
		Footer:         "Thank you for choosing Lakshmi Caterings!",
		CurrencySymbol: "₹",
		Location:       time.Local,
	}
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders v with two decimals and English digit grouping.
func FormatAmount(symbol string, v float64) string {
	return symbol + amountPrinter.Sprintf("%.2f", v)
}

func (b Branding) Amount(v float64) string {
	return FormatAmount(b.CurrencySymbol, v)
}

func (b Branding) FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	loc := b.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// Reference returns the last n characters of the invoice number.
func (inv Invoice) Reference(n int) string {
	if len(inv.Number) <= n {
		return inv.Number
	}
	return inv.Number[len(inv.Number)-n:]
}

// Filename builds "<prefix>_<client>_<last4>.<ext>" with the client name made
// safe for common filesystems.
func Filename(prefix string, inv Invoice, format Format) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, sanitize(inv.ClientName), inv.Reference(4), format)
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Guest"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return '_'
		case strings.ContainsRune(`<>:"/\|?*`, r):
			return '_'
		}
		return r
	}, name)
}
