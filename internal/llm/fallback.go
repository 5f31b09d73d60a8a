package llm

import "context"

// Fallback tries Primary first; if it errors (or was never configured), tries
// Secondary. Use when the preferred backend may be missing a credential or
// flaking while another can serve the same request.
type Fallback struct {
	Primary   Client
	Secondary Client
}

// Complete calls Primary.Complete; on any error, calls Secondary.Complete.
// An unconfigured Primary is skipped without a network attempt.
func (f *Fallback) Complete(ctx context.Context, req Request) (string, error) {
	if f.Secondary != nil && !f.Primary.Configured() && f.Secondary.Configured() {
		return f.Secondary.Complete(ctx, req)
	}
	s, err := f.Primary.Complete(ctx, req)
	if err != nil && f.Secondary != nil && f.Secondary.Configured() {
		return f.Secondary.Complete(ctx, req)
	}
	return s, err
}

// Configured reports whether any client in the chain is configured.
func (f *Fallback) Configured() bool {
	if f.Primary.Configured() {
		return true
	}
	return f.Secondary != nil && f.Secondary.Configured()
}

// Chain folds clients into nested Fallbacks, first tried first. Returns nil
// when no clients are given, and the client itself when given exactly one.
func Chain(clients ...Client) Client {
	switch len(clients) {
	case 0:
		return nil
	case 1:
		return clients[0]
	}
	return &Fallback{Primary: clients[0], Secondary: Chain(clients[1:]...)}
}
