//go:build !cgo

package hal

import "fmt"

func RunWindow(_ func(h HAL) App, _, _ int) error {
	return fmt.Errorf("window mode requires cgo (build/run with CGO_ENABLED=1): %w", ErrNotImplemented)
}
