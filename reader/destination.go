// destination.go - Ziel-Matrizen fuer gepackte Minibatch-Puffer
//
// Dieses Modul enthaelt:
// - Destination: Abnehmer-Interface fuer Feature- und Label-Puffer
// - TensorMatrix: Adapter auf einen dichten Tensor
package reader

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/7blacky7/imagefeed/pix"
)

// Destination nimmt einen gepackten Minibatch-Puffer entgegen
// data ist spaltenweise abgelegt (data[rows*c+r], Sample c liegt am
// Stueck) und nur fuer die Dauer des Aufrufs gueltig, Implementierungen
// muessen kopieren
type Destination[T pix.Float] interface {
	SetValues(rows, cols int, data []T) error
}

// TensorMatrix uebertraegt Minibatch-Puffer in einen dichten Tensor
// Der Tensor ist zeilenweise abgelegt, das Backing wird nur bei
// geaenderter Elementzahl neu angelegt
type TensorMatrix[T pix.Float] struct {
	dense   *tensor.Dense
	backing []T
}

// NewTensorMatrix erstellt eine leere Ziel-Matrix
func NewTensorMatrix[T pix.Float]() *TensorMatrix[T] {
	return &TensorMatrix[T]{}
}

// SetValues kopiert den spaltenweisen Puffer transponiert in den Tensor
func (m *TensorMatrix[T]) SetValues(rows, cols int, data []T) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("invalid matrix shape %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return fmt.Errorf("matrix data length %d does not match shape %dx%d", len(data), rows, cols)
	}

	if len(m.backing) != rows*cols {
		m.backing = make([]T, rows*cols)
	}
	for c := 0; c < cols; c++ {
		col := data[rows*c : rows*(c+1)]
		for r, v := range col {
			m.backing[r*cols+c] = v
		}
	}

	m.dense = tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(m.backing))
	return nil
}

// Dense gibt den zuletzt gefuellten Tensor zurueck, nil vor dem
// ersten SetValues
func (m *TensorMatrix[T]) Dense() *tensor.Dense {
	return m.dense
}
