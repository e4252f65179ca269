package stages

import (
	"context"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// VerifyName is the name of the output verification transform.
const VerifyName = "verify"

var _ pipeline.Transform = (*VerifyOutputs)(nil)

// VerifyOutputs checks that compilation produced the files dependents are resolved from.
type VerifyOutputs struct {
	verifier ports.Verifier
}

// NewVerifyOutputs creates the output verification transform.
func NewVerifyOutputs(verifier ports.Verifier) *VerifyOutputs {
	return &VerifyOutputs{verifier: verifier}
}

// Name returns the transform name.
func (v *VerifyOutputs) Name() string {
	return VerifyName
}

// Apply fails with domain.ErrMissingOutput when a required destination file is absent.
func (v *VerifyOutputs) Apply(_ context.Context, unit pipeline.Unit) (*domain.Graph, error) {
	node, err := unit.Current()
	if err != nil {
		return nil, err
	}

	for _, output := range node.Data().DestinationFiles.Required() {
		ok, err := v.verifier.VerifyOutputs([]string{output})
		if err != nil {
			return nil, err
		}
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrMissingOutput, "verify outputs"), "entry_point", node.Name().String())
			return nil, zerr.With(err, "path", output)
		}
	}
	return unit.Graph, nil
}
