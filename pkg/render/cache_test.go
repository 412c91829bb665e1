package render

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestComponentCacheLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	provider := ProviderFunc(func(ctx context.Context, ref ComponentRef) (Component, error) {
		calls.Add(1)
		<-release
		return staticComponent(ref.Key()), nil
	})

	cache := NewComponentCache()
	ref := ComponentRef{Module: "./Home.jsx"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(context.Background(), provider, ref); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("provider calls = %d, want 1", got)
	}
	if cache.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cache.Len())
	}
}

func TestComponentCacheDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int32
	provider := ProviderFunc(func(ctx context.Context, ref ComponentRef) (Component, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("module not found")
		}
		return staticComponent("ok"), nil
	})

	cache := NewComponentCache()
	ref := ComponentRef{Module: "./Flaky.jsx"}

	if _, err := cache.Load(context.Background(), provider, ref); err == nil {
		t.Fatalf("first Load() error = nil")
	}
	if _, err := cache.Load(context.Background(), provider, ref); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}

	cache.Forget(ref)
	if cache.Len() != 0 {
		t.Fatalf("Len() after Forget = %d, want 0", cache.Len())
	}
}
