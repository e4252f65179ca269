package ports

import (
	"context"
	"io"
)

// ProgressReporter signals the progress of build steps to the user.
// Reporting is observational: it never changes the outcome of the step it reports on.
//
//go:generate go run go.uber.org/mock/mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type ProgressReporter interface {
	// Start signals that the step named label started.
	Start(ctx context.Context, label string) Progress
}

// Progress is the handle of one reported step.
type Progress interface {
	// Output returns a writer that attaches tool output to the step.
	Output() io.Writer
	// Succeed signals that the step completed.
	Succeed()
	// Fail signals that the step failed with err.
	Fail(err error)
	// Cached signals that the step was skipped because its result is up to date.
	Cached()
}
