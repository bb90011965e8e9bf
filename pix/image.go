// image.go - Dekodierte Sample-Bilder in zwei Stufen
//
// Dieses Modul enthaelt:
// - Float: Typ-Constraint fuer die Pixel-Elementtypen (float32/float64)
// - Image: Sample-Bild mit 8-Bit-Stufe (Pix) und Float-Stufe (Data)
// - DecodeFile/DecodeBytes: Bild dekodieren (JPEG/PNG/GIF/BMP/TIFF/WebP)
// - ToFloat: Konvertierung der 8-Bit-Stufe in interleaved Float-Daten
//
// Die Float-Werte bleiben im Bereich 0..255, es wird nicht auf 0..1 skaliert
package pix

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// WebP kann imaging nicht selbst, Decoder hier registrieren
	_ "golang.org/x/image/webp"
)

// Float umfasst die unterstuetzten Pixel-Elementtypen
type Float interface {
	~float32 | ~float64
}

// Image haelt ein Sample-Bild in einer von zwei Stufen:
// nach dem Dekodieren die 8-Bit-Stufe (Pix), nach der Skalierung
// die Float-Stufe (Data, zeilenweise interleaved)
type Image[T Float] struct {
	Pix  *image.NRGBA // nil sobald die Float-Stufe erreicht ist
	Data []T          // len = Rows*Cols*Channels

	Rows     int
	Cols     int
	Channels int
}

// FromNRGBA erstellt ein Image aus einem dekodierten 8-Bit-Bild
func FromNRGBA[T Float](p *image.NRGBA) *Image[T] {
	im := &Image[T]{}
	im.SetPix(p)
	return im
}

// DecodeFile dekodiert das Bild unter dem angegebenen Pfad
func DecodeFile[T Float](path string) (*Image[T], error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return FromNRGBA[T](imaging.Clone(img)), nil
}

// DecodeBytes dekodiert ein Bild aus Byte-Daten
func DecodeBytes[T Float](data []byte) (*Image[T], error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromNRGBA[T](imaging.Clone(img)), nil
}

// SetPix ersetzt die 8-Bit-Stufe und uebernimmt deren Groesse
func (im *Image[T]) SetPix(p *image.NRGBA) {
	im.Pix = p
	im.Cols = p.Bounds().Dx()
	im.Rows = p.Bounds().Dy()
	im.Channels = 3
	im.Data = nil
}

// IsFloat meldet ob das Bild bereits in der Float-Stufe ist
func (im *Image[T]) IsFloat() bool {
	return im.Pix == nil && im.Data != nil
}

// Elements gibt die Gesamtzahl der Pixel-Elemente zurueck
func (im *Image[T]) Elements() int {
	return im.Rows * im.Cols * im.Channels
}

// ToFloat konvertiert die 8-Bit-Stufe in interleaved Float-Daten
// mit der angegebenen Kanalzahl: 3 = RGB, 1 = Luminanz
func (im *Image[T]) ToFloat(channels int) error {
	if im.Pix == nil {
		if im.Data == nil {
			return fmt.Errorf("image has no pixel data")
		}
		return nil
	}

	src := im.Pix
	switch channels {
	case 3:
		data := make([]T, im.Rows*im.Cols*3)
		di := 0
		for y := range im.Rows {
			row := src.Pix[y*src.Stride : y*src.Stride+im.Cols*4]
			for x := range im.Cols {
				data[di] = T(row[x*4])
				data[di+1] = T(row[x*4+1])
				data[di+2] = T(row[x*4+2])
				di += 3
			}
		}
		im.Data = data
	case 1:
		gray := imaging.Grayscale(src)
		data := make([]T, im.Rows*im.Cols)
		di := 0
		for y := range im.Rows {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+im.Cols*4]
			for x := range im.Cols {
				data[di] = T(row[x*4])
				di++
			}
		}
		im.Data = data
	default:
		return fmt.Errorf("unsupported channel count %d, must be 1 or 3", channels)
	}

	im.Channels = channels
	im.Pix = nil
	return nil
}
