package fs

import (
	"os"

	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier provides functionality to verify the existence of files.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyOutputs reports whether every output file exists. Empty paths are ignored.
func (v *Verifier) VerifyOutputs(outputs []string) (bool, error) {
	for _, path := range outputs {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
		}
	}
	return true, nil
}
