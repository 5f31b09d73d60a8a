package llm

import (
	"context"
	"errors"
	"testing"
)

type fakeClient struct {
	reply      string
	err        error
	configured bool
	calls      int
}

func (f *fakeClient) Complete(ctx context.Context, req Request) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Configured() bool { return f.configured }

func TestFallbackPrimaryWins(t *testing.T) {
	primary := &fakeClient{reply: "from primary", configured: true}
	secondary := &fakeClient{reply: "from secondary", configured: true}
	f := &Fallback{Primary: primary, Secondary: secondary}

	got, err := f.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "from primary" {
		t.Errorf("got %q", got)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestFallbackOnError(t *testing.T) {
	primary := &fakeClient{err: errors.New("boom"), configured: true}
	secondary := &fakeClient{reply: "from secondary", configured: true}
	f := &Fallback{Primary: primary, Secondary: secondary}

	got, err := f.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "from secondary" {
		t.Errorf("got %q", got)
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want 1", primary.calls)
	}
}

func TestFallbackSkipsUnconfiguredPrimary(t *testing.T) {
	primary := &fakeClient{reply: "from primary"}
	secondary := &fakeClient{reply: "from secondary", configured: true}
	f := &Fallback{Primary: primary, Secondary: secondary}

	got, err := f.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "from secondary" {
		t.Errorf("got %q", got)
	}
	if primary.calls != 0 {
		t.Errorf("unconfigured primary called %d times, want 0", primary.calls)
	}
}

func TestFallbackErrorWhenAllFail(t *testing.T) {
	primary := &fakeClient{err: errors.New("primary down"), configured: true}
	secondary := &fakeClient{err: errors.New("secondary down"), configured: true}
	f := &Fallback{Primary: primary, Secondary: secondary}

	if _, err := f.Complete(context.Background(), Request{Prompt: "hi"}); err == nil {
		t.Fatal("want error when every client fails")
	}
}

func TestChain(t *testing.T) {
	if Chain() != nil {
		t.Error("empty chain should be nil")
	}
	single := &fakeClient{configured: true}
	if Chain(single) != Client(single) {
		t.Error("single-client chain should be the client itself")
	}

	a := &fakeClient{err: errors.New("a down"), configured: true}
	b := &fakeClient{err: errors.New("b down"), configured: true}
	c := &fakeClient{reply: "from c", configured: true}
	chain := Chain(a, b, c)
	if !chain.Configured() {
		t.Fatal("chain with configured clients should be configured")
	}
	got, err := chain.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "from c" {
		t.Errorf("got %q", got)
	}

	unconfigured := Chain(&fakeClient{}, &fakeClient{})
	if unconfigured.Configured() {
		t.Error("chain of unconfigured clients should not be configured")
	}
}
