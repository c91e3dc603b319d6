package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

func answer(text string) ComputeFunc {
	return func(context.Context) (*model.ProviderResponse, error) {
		return &model.ProviderResponse{RawText: text, ProviderID: model.GeminiFlash, Model: "m"}, nil
	}
}

func TestGetOrComputeHit(t *testing.T) {
	c := New()
	ctx := context.Background()

	first, cached, err := c.GetOrCompute(ctx, "k", answer("one"))
	if err != nil || cached {
		t.Fatalf("first call: cached=%v err=%v", cached, err)
	}

	var calls int
	second, cached, err := c.GetOrCompute(ctx, "k", func(context.Context) (*model.ProviderResponse, error) {
		calls++
		return &model.ProviderResponse{RawText: "two"}, nil
	})
	if err != nil || !cached {
		t.Fatalf("second call: cached=%v err=%v", cached, err)
	}
	if calls != 0 {
		t.Errorf("compute called %d times on a hit", calls)
	}
	if second.RawText != first.RawText {
		t.Errorf("hit returned %q, want %q", second.RawText, first.RawText)
	}

	st := c.Stats()
	if st.Entries != 1 || st.Hits != 1 || st.Misses != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	c := New()
	ctx := context.Background()
	boom := errors.New("boom")

	_, _, err := c.GetOrCompute(ctx, "k", func(context.Context) (*model.ProviderResponse, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("failed computation left %d entries", c.Len())
	}

	resp, cached, err := c.GetOrCompute(ctx, "k", answer("ok"))
	if err != nil || cached || resp.RawText != "ok" {
		t.Errorf("retry: resp=%+v cached=%v err=%v", resp, cached, err)
	}
}

func TestConcurrentMissesComputeOnce(t *testing.T) {
	c := New()
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(context.Context) (*model.ProviderResponse, error) {
		calls.Add(1)
		<-release
		return &model.ProviderResponse{RawText: "shared"}, nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, _, err := c.GetOrCompute(ctx, "same", fn)
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			results[i] = resp.RawText
		}(i)
	}

	// 让所有调用进入等待后再放行
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("compute called %d times, want 1", got)
	}
	for i, r := range results {
		if r != "shared" {
			t.Errorf("worker %d got %q", i, r)
		}
	}
}

func TestDistinctKeysDoNotShare(t *testing.T) {
	c := New()
	ctx := context.Background()
	a, _, _ := c.GetOrCompute(ctx, "a", answer("A"))
	b, _, _ := c.GetOrCompute(ctx, "b", answer("B"))
	if a.RawText == b.RawText {
		t.Errorf("distinct keys returned the same value %q", a.RawText)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestPutKeepsFirstValue(t *testing.T) {
	c := New()
	c.Put("k", model.ProviderResponse{RawText: "first"})
	e := c.Put("k", model.ProviderResponse{RawText: "second"})
	if e.Value.RawText != "first" {
		t.Errorf("Put overwrote entry: %q", e.Value.RawText)
	}
	got, ok := c.Get("k")
	if !ok || got.Key != "k" || got.CreatedAt.IsZero() {
		t.Errorf("Get() = %+v, %v", got, ok)
	}
}

func TestCanceledWaiter(t *testing.T) {
	c := New()
	release := make(chan struct{})
	defer close(release)

	go c.GetOrCompute(context.Background(), "slow", func(context.Context) (*model.ProviderResponse, error) {
		<-release
		return &model.ProviderResponse{RawText: "late"}, nil
	})
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err := c.GetOrCompute(ctx, "slow", answer("never"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestAbandonedLeaderDoesNotFailWaiters(t *testing.T) {
	c := New()
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (*model.ProviderResponse, error) {
		close(started)
		select {
		case <-release:
			return &model.ProviderResponse{RawText: "shared"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrCompute(leaderCtx, "k", fn)
		leaderErr <- err
	}()
	<-started

	type result struct {
		resp   *model.ProviderResponse
		cached bool
		err    error
	}
	waiter := make(chan result, 1)
	go func() {
		resp, cached, err := c.GetOrCompute(context.Background(), "k", answer("second call"))
		waiter <- result{resp, cached, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("leader err = %v, want canceled", err)
	}
	close(release)

	got := <-waiter
	if got.err != nil {
		t.Fatalf("waiter err = %v", got.err)
	}
	if got.resp.RawText != "shared" || !got.cached {
		t.Errorf("waiter = %q cached=%v, want shared result", got.resp.RawText, got.cached)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLastWaiterCancelsSharedCall(t *testing.T) {
	c := New()
	canceled := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	go c.GetOrCompute(ctx, "k", func(ctx context.Context) (*model.ProviderResponse, error) {
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	})
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("abandoned call was not canceled")
	}
}

func TestReturnedValuesDoNotAliasEntries(t *testing.T) {
	c := New()
	ctx := context.Background()
	fn := func(context.Context) (*model.ProviderResponse, error) {
		trace := "signals"
		return &model.ProviderResponse{RawText: "x", ReasoningTrace: &trace}, nil
	}

	first, _, err := c.GetOrCompute(ctx, "k", fn)
	if err != nil {
		t.Fatal(err)
	}
	*first.ReasoningTrace = "changed by caller"

	second, cached, err := c.GetOrCompute(ctx, "k", fn)
	if err != nil || !cached {
		t.Fatalf("second call: cached=%v err=%v", cached, err)
	}
	if *second.ReasoningTrace != "signals" {
		t.Fatalf("trace = %q, want signals", *second.ReasoningTrace)
	}
	*second.ReasoningTrace = "changed again"

	e, _ := c.Get("k")
	if *e.Value.ReasoningTrace != "signals" {
		t.Errorf("stored trace = %q", *e.Value.ReasoningTrace)
	}
	*e.Value.ReasoningTrace = "changed through Get"
	if e2, _ := c.Get("k"); *e2.Value.ReasoningTrace != "signals" {
		t.Errorf("Get leaked the stored trace: %q", *e2.Value.ReasoningTrace)
	}
}
