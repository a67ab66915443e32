package ports

import (
	"context"
	"io"

	"go.trai.ch/appenv/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress of the steps appenv performs.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string) (context.Context, Vertex)
}

// Vertex is a single recorded step.
type Vertex interface {
	// Stdout returns a writer for the standard output of the step.
	Stdout() io.Writer
	// Stderr returns a writer for the error output of the step.
	Stderr() io.Writer
	// Log records a message associated with the step.
	Log(level domain.LogLevel, msg string)
	// Complete marks the step as finished, failed when err is non-nil.
	Complete(err error)
	// Cached marks the step as satisfied without doing any work.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
