package invoice

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DocxSink writes a minimal WordprocessingML package: one document part plus
// the emblem and QR images.
type DocxSink struct {
	branding Branding
	qr       QRGenerator
}

func NewDocxSink(b Branding, qr QRGenerator) *DocxSink {
	return &DocxSink{branding: b, qr: defaultQR(b, qr)}
}

func (s *DocxSink) Format() Format { return FormatDOCX }

type docxData struct {
	Business string
	Client   string
	Phone    string
	Address  string
	Date     string
	OrderRef string
	MenuName string
	Price    string
	Quantity int
	Total    string
	Items    []string
	Footer   string
}

func (s *DocxSink) Render(inv Invoice) (*Artifact, error) {
	emblem, err := Emblem()
	if err != nil {
		return nil, err
	}
	code, err := s.qr.Generate(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	var doc bytes.Buffer
	err = docxDocument.Execute(&doc, docxData{
		Business: s.branding.BusinessName,
		Client:   inv.ClientName,
		Phone:    orNA(inv.ClientPhone),
		Address:  orNA(inv.ClientAddress),
		Date:     s.branding.FormatDate(inv.Date),
		OrderRef: inv.Reference(6),
		MenuName: inv.MenuName,
		Price:    s.branding.Amount(inv.PricePerPlate),
		Quantity: inv.Quantity,
		Total:    s.branding.Amount(inv.Total),
		Items:    inv.Items,
		Footer:   s.branding.Footer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxPackageRels)},
		{"word/_rels/document.xml.rels", []byte(docxDocumentRels)},
		{"word/document.xml", doc.Bytes()},
		{"word/media/emblem.png", emblem},
		{"word/media/qr.png", code},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish document: %w", err)
	}

	return &Artifact{
		Filename:    Filename("Order", inv, FormatDOCX),
		ContentType: docxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func xmlText(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func imageRef(id int, name, rel string) map[string]interface{} {
	return map[string]interface{}{"ID": id, "Name": name, "Rel": rel}
}

func tableRow(d docxData) []string {
	return []string{d.MenuName, d.Price, fmt.Sprintf("%d", d.Quantity), d.Total}
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rIdEmblem" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/emblem.png"/>
<Relationship Id="rIdQR" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/qr.png"/>
</Relationships>`

var docxDocument = template.Must(template.New("document").Funcs(template.FuncMap{
	"x":     xmlText,
	"image": imageRef,
	"row":   tableRow,
	"headers": func() []string {
		return []string{"Menu Name", "Price", "Qty", "Total"}
	},
}).Parse(
	`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">
<w:body>
{{template "image" (image 1 "emblem.png" "rIdEmblem")}}
<w:p><w:pPr><w:jc w:val="center"/><w:spacing w:after="200"/></w:pPr><w:r><w:rPr><w:b/><w:color w:val="0F2557"/><w:sz w:val="48"/></w:rPr><w:t xml:space="preserve">{{x .Business}}</w:t></w:r></w:p>
<w:p><w:pPr><w:jc w:val="center"/><w:spacing w:after="300"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr><w:t xml:space="preserve">Invoice for {{x .Client}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Order ID: #{{x .OrderRef}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Phone: {{x .Phone}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Address: {{x .Address}}</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Date: {{x .Date}}</w:t></w:r></w:p>
<w:p/>
<w:tbl>
<w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders><w:top w:val="single" w:sz="4"/><w:left w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/><w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/></w:tblBorders><w:tblCellMar><w:top w:w="100" w:type="dxa"/><w:left w:w="100" w:type="dxa"/><w:bottom w:w="100" w:type="dxa"/><w:right w:w="100" w:type="dxa"/></w:tblCellMar></w:tblPr>
<w:tr>{{range $h := headers}}<w:tc><w:p><w:r><w:rPr><w:b/><w:sz w:val="24"/></w:rPr><w:t>{{$h}}</w:t></w:r></w:p></w:tc>{{end}}</w:tr>
<w:tr>{{range $c := row .}}<w:tc><w:p><w:r><w:rPr><w:sz w:val="24"/></w:rPr><w:t xml:space="preserve">{{x $c}}</w:t></w:r></w:p></w:tc>{{end}}</w:tr>
</w:tbl>
<w:p><w:pPr><w:spacing w:before="400"/></w:pPr><w:r><w:rPr><w:b/><w:color w:val="0F2557"/><w:sz w:val="28"/></w:rPr><w:t>Included Items:</w:t></w:r></w:p>
{{range .Items}}<w:p><w:r><w:rPr><w:sz w:val="28"/></w:rPr><w:t xml:space="preserve">• {{x .}}</w:t></w:r></w:p>
{{else}}<w:p><w:r><w:rPr><w:i/></w:rPr><w:t>No items selected</w:t></w:r></w:p>
{{end}}{{template "image" (image 2 "qr.png" "rIdQR")}}
<w:p><w:pPr><w:jc w:val="center"/><w:spacing w:before="600"/></w:pPr><w:r><w:rPr><w:color w:val="888888"/></w:rPr><w:t xml:space="preserve">{{x .Footer}}</w:t></w:r></w:p>
<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>
</w:body>
</w:document>
{{define "image"}}<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0"><wp:extent cx="762000" cy="762000"/><wp:docPr id="{{.ID}}" name="{{.Name}}"/><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:pic><pic:nvPicPr><pic:cNvPr id="{{.ID}}" name="{{.Name}}"/><pic:cNvPicPr/></pic:nvPicPr><pic:blipFill><a:blip r:embed="{{.Rel}}"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill><pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="762000" cy="762000"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>{{end}}`))
