package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestPage_LatestRequestWins(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	page := NewPage[string, string]("projects")
	started := make(chan struct{})

	slow := func(ctx context.Context, q string) string {
		close(started)
		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
		}
		return "results for " + q
	}
	fast := func(ctx context.Context, q string) string {
		return "results for " + q
	}

	var wg sync.WaitGroup
	var firstOK bool
	var first string
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstOK = page.Load(context.Background(), "ab", slow)
	}()

	<-started
	second, secondOK := page.Load(context.Background(), "abc", fast)
	wg.Wait()

	if firstOK || first != "" {
		t.Errorf("stale load should be discarded, got %q ok=%v", first, firstOK)
	}
	if !secondOK || second != "results for abc" {
		t.Errorf("latest load = %q ok=%v", second, secondOK)
	}

	params, value, ok := page.Current()
	if !ok || params != "abc" || value != "results for abc" {
		t.Errorf("Current() = %q %q %v", params, value, ok)
	}
}

func TestPage_SupersededLoadIsCanceled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	page := NewPage[int, int]("events")
	canceled := make(chan struct{})
	started := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		page.Load(context.Background(), 1, func(ctx context.Context, _ int) int {
			close(started)
			<-ctx.Done()
			close(canceled)
			return 1
		})
	}()

	<-started
	page.Load(context.Background(), 2, func(context.Context, int) int { return 2 })

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("superseded load was not canceled")
	}
	<-done
}

func TestPage_CurrentBeforeLoad(t *testing.T) {
	page := NewPage[string, []string]("transactions")
	if _, _, ok := page.Current(); ok {
		t.Error("expected no committed value before the first load")
	}

	page.Load(context.Background(), "q", func(context.Context, string) []string { return []string{"a"} })
	page.Close()
	if _, v, ok := page.Current(); !ok || len(v) != 1 {
		t.Errorf("Close should keep the committed value, got %v %v", v, ok)
	}
}

func TestPage_CommitFollowsBeginOrder(t *testing.T) {
	page := NewPage[string, string]("projects")

	first, firstCtx := page.Begin(context.Background(), "ab")
	second, secondCtx := page.Begin(context.Background(), "abc")

	if firstCtx.Err() == nil {
		t.Error("first load should be canceled once the second begins")
	}
	if second.Params() != "abc" {
		t.Errorf("Params() = %q", second.Params())
	}

	// The later request answers first; the earlier one arrives after it.
	if !page.Commit(second, "results for abc") {
		t.Error("latest load should commit")
	}
	if page.Commit(first, "results for ab") {
		t.Error("earlier load committed after a later one began")
	}
	if secondCtx.Err() == nil {
		t.Error("Commit should release the load context")
	}

	params, value, ok := page.Current()
	if !ok || params != "abc" || value != "results for abc" {
		t.Errorf("Current() = %q %q %v", params, value, ok)
	}
}

func TestPage_CloseDropsPendingCommit(t *testing.T) {
	page := NewPage[int, int]("events")

	ticket, ctx := page.Begin(context.Background(), 1)
	page.Close()
	if ctx.Err() == nil {
		t.Error("Close should cancel the pending load")
	}
	if page.Commit(ticket, 1) {
		t.Error("load committed after Close")
	}
	if _, _, ok := page.Current(); ok {
		t.Error("expected no committed value")
	}
}
