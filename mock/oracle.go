package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/distill"
)

var _ distill.Oracle = (*Oracle)(nil)

// Oracle is a mock implementation of distill.Oracle.
type Oracle struct {
	InvokeFn func(ctx context.Context, content, instructions string) (string, error)
}

func (o *Oracle) Invoke(ctx context.Context, content, instructions string) (string, error) {
	return o.InvokeFn(ctx, content, instructions)
}

// OracleReply is one scripted oracle answer.
type OracleReply struct {
	Output string
	Err    error
}

// ScriptedOracle answers calls in order from Replies and records every
// chunk it was given. Calls past the end of the script return "".
type ScriptedOracle struct {
	Replies []OracleReply

	mu     sync.Mutex
	chunks []string
}

var _ distill.Oracle = (*ScriptedOracle)(nil)

func (o *ScriptedOracle) Invoke(_ context.Context, content, _ string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	i := len(o.chunks)
	o.chunks = append(o.chunks, content)
	if i >= len(o.Replies) {
		return "", nil
	}
	return o.Replies[i].Output, o.Replies[i].Err
}

// Calls returns the chunks passed to Invoke, in call order.
func (o *ScriptedOracle) Calls() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.chunks...)
}
