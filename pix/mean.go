// mean.go - Mean-Image-Store
//
// Dieses Modul enthaelt:
// - LoadMean: Liest einen Mean-Image-Store (JSON)
// - SaveMean: Schreibt einen Mean-Image-Store
//
// Format: JSON mit den Schluesseln MeanImg (base64, float32 little-endian,
// interleaved), Channel, Row, Col. Channel*Row*Col muss der Elementzahl
// der gespeicherten Daten entsprechen.
package pix

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidMean zeigt einen korrupten Mean-Image-Store an
var ErrInvalidMean = errors.New("invalid mean image store")

type meanStore struct {
	MeanImg string `json:"MeanImg"`
	Channel int    `json:"Channel"`
	Row     int    `json:"Row"`
	Col     int    `json:"Col"`
}

// LoadMean liest einen Mean-Image-Store und gibt das Bild
// in der Float-Stufe mit der deklarierten Form zurueck
func LoadMean[T Float](path string) (*Image[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mean file: %w", err)
	}

	var store meanStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parse mean file %s: %w", path, err)
	}

	raw, err := base64.StdEncoding.DecodeString(store.MeanImg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMean, path, err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: %s: MeanImg length %d is not a multiple of 4", ErrInvalidMean, path, len(raw))
	}

	count := len(raw) / 4
	if store.Channel*store.Row*store.Col != count {
		return nil, fmt.Errorf("%w: %s: declared %dx%dx%d does not match %d elements",
			ErrInvalidMean, path, store.Channel, store.Row, store.Col, count)
	}

	vals := make([]T, count)
	for i := range vals {
		vals[i] = T(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
	}

	return &Image[T]{
		Data:     vals,
		Rows:     store.Row,
		Cols:     store.Col,
		Channels: store.Channel,
	}, nil
}

// SaveMean schreibt das Bild (Float-Stufe) als Mean-Image-Store
func SaveMean[T Float](path string, im *Image[T]) error {
	if !im.IsFloat() {
		return fmt.Errorf("%w: image is not in float form", ErrInvalidMean)
	}
	if len(im.Data) != im.Elements() {
		return fmt.Errorf("%w: %d elements do not match %dx%dx%d",
			ErrInvalidMean, len(im.Data), im.Channels, im.Rows, im.Cols)
	}

	raw := make([]byte, len(im.Data)*4)
	for i, v := range im.Data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(float32(v)))
	}

	data, err := json.MarshalIndent(meanStore{
		MeanImg: base64.StdEncoding.EncodeToString(raw),
		Channel: im.Channels,
		Row:     im.Rows,
		Col:     im.Cols,
	}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
