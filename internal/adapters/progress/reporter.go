// Package progress implements the progress reporter using Progrock.
package progress

import (
	"context"
	"io"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/libpack/internal/core/ports"
)

var _ ports.ProgressReporter = (*Recorder)(nil)

// Recorder implements ports.ProgressReporter by recording a vertex per build step.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	closeOnce sync.Once
	closeErr  error
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex labelled label. Labels are digested, so a step that is
// started again in a later cycle updates the same vertex.
func (r *Recorder) Start(_ context.Context, label string) ports.Progress {
	v := r.rec.Vertex(digest.FromString(label), label)
	return &Vertex{vertex: v}
}

// Close flushes and closes the recording session. Later calls return the first result.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		if c, ok := r.w.(io.Closer); ok {
			r.closeErr = c.Close()
		}
	})
	return r.closeErr
}

// Vertex implements ports.Progress wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Output returns a writer attaching tool output to the vertex.
func (v *Vertex) Output() io.Writer {
	return v.vertex.Stdout()
}

// Succeed marks the vertex as finished.
func (v *Vertex) Succeed() {
	v.vertex.Done(nil)
}

// Fail marks the vertex as failed with err.
func (v *Vertex) Fail(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
	v.vertex.Done(nil)
}
