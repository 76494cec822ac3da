package invoice

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const emblemSize = 200

var (
	emblemNavy = color.RGBA{R: 0x0F, G: 0x25, B: 0x57, A: 0xFF}
	emblemGold = color.RGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF}
)

// Emblem draws the round "LC" badge: navy disk, gold ring, white initials.
func Emblem() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, emblemSize, emblemSize))
	c := float64(emblemSize) / 2
	for y := 0; y < emblemSize; y++ {
		for x := 0; x < emblemSize; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			switch {
			case d <= 90:
				img.SetRGBA(x, y, emblemNavy)
			case d <= 100:
				img.SetRGBA(x, y, emblemGold)
			}
		}
	}

	if err := drawInitials(img, "LC"); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode emblem: %w", err)
	}
	return buf.Bytes(), nil
}

func drawInitials(dst draw.Image, text string) error {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse emblem font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 80, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("failed to load emblem font face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.White), Face: face}
	width := d.MeasureString(text).Round()
	capHeight := face.Metrics().CapHeight.Round()
	if capHeight == 0 {
		capHeight = face.Metrics().Ascent.Round() * 7 / 10
	}
	d.Dot = fixed.P((emblemSize-width)/2, (emblemSize+capHeight)/2)
	d.DrawString(text)
	return nil
}
