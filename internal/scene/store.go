// ABOUTME: File persistence for the hotspot
// ABOUTME: Loads and saves hotspot state at a fixed path
package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadFile reads hotspot state from path. A missing file leaves h unchanged.
func LoadFile(h *Hotspot, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()
	return h.Load(f)
}

// SaveFile writes hotspot state to path
func SaveFile(h *Hotspot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	if err := h.Save(f, 0); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
