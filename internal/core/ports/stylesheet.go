package ports

import (
	"context"

	"go.trai.ch/libpack/internal/core/domain"
)

// StylesheetOptions configure a stylesheet processor for one entry point.
type StylesheetOptions struct {
	BasePath     string
	CSSURL       domain.CSSURL
	IncludePaths []string
}

// StylesheetProcessorFactory constructs stylesheet processors.
//
//go:generate go run go.uber.org/mock/mockgen -source=stylesheet.go -destination=mocks/mock_stylesheet.go -package=mocks
type StylesheetProcessorFactory interface {
	// New constructs a processor. Construction may be expensive; callers memoize the result.
	New(ctx context.Context, opts StylesheetOptions) (StylesheetProcessor, error)
}

// StylesheetProcessor turns a stylesheet source into the CSS embedded in compiled output.
// A processor is stateful and reused across rebuilds of the same entry point.
type StylesheetProcessor interface {
	// Process returns the CSS for the stylesheet at path.
	Process(ctx context.Context, path string) (string, error)
}
