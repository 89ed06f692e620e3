package bus

import "context"

// Source generates one block of interleaved stereo samples from a
// channel's parameters. Implementations may block; they should honour ctx.
type Source interface {
	Infer(ctx context.Context, params []float32) ([]float32, error)
}

// InferFunc adapts a function to Source.
type InferFunc func(ctx context.Context, params []float32) ([]float32, error)

// Infer calls f.
func (f InferFunc) Infer(ctx context.Context, params []float32) ([]float32, error) {
	return f(ctx, params)
}
