package distill

import "context"

// Oracle is the external text-extraction capability, typically a language model.
// Invoke blocks until the model answers or fails; callers must not assume
// any timeout is applied.
type Oracle interface {
	Invoke(ctx context.Context, content, instructions string) (string, error)
}

// OracleFunc adapts an ordinary function to the Oracle interface.
type OracleFunc func(ctx context.Context, content, instructions string) (string, error)

// Invoke calls f(ctx, content, instructions).
func (f OracleFunc) Invoke(ctx context.Context, content, instructions string) (string, error) {
	return f(ctx, content, instructions)
}

// OracleConfig identifies the model behind an Oracle and how it samples.
type OracleConfig struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
}
