package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cardsearch/internal/search"
	"cardsearch/internal/widget"
)

func newTestStore() (*MemoryStore, *int) {
	built := 0
	s := NewMemoryStore(func(id string) *Session {
		built++
		n := widget.NewNotifier()
		d := widget.NewDisplay(widget.DisplayMulti)
		return &Session{
			Notifier:   n,
			Display:    d,
			Controller: search.NewController(nil, search.Surface{Notifier: n, Renderer: d}, search.DefaultMessages()),
		}
	})
	return s, &built
}

func TestNewMemoryStore(t *testing.T) {
	store, _ := newTestStore()

	if store == nil {
		t.Fatal("NewMemoryStore returned nil")
	}
	if store.sessions == nil {
		t.Fatal("sessions map not initialized")
	}
	if store.Count() != 0 {
		t.Errorf("expected empty store, got %d sessions", store.Count())
	}
}

func TestGetOrCreate(t *testing.T) {
	t.Run("creates session once per id", func(t *testing.T) {
		store, built := newTestStore()

		first := store.GetOrCreate("abc")
		second := store.GetOrCreate("abc")

		if first != second {
			t.Error("expected the same session for the same id")
		}
		if *built != 1 {
			t.Errorf("expected factory to run once, ran %d times", *built)
		}
		if first.ID != "abc" {
			t.Errorf("expected id abc, got %q", first.ID)
		}
		if first.Controller.State() != search.StateIdle {
			t.Errorf("expected idle controller, got %v", first.Controller.State())
		}
	})

	t.Run("separate ids get separate widgets", func(t *testing.T) {
		store, _ := newTestStore()

		a := store.GetOrCreate("a")
		b := store.GetOrCreate("b")
		a.Notifier.Notify("only a", widget.KindInfo)

		if b.Notifier.Current().Visible() {
			t.Error("notification leaked between sessions")
		}
		if store.Count() != 2 {
			t.Errorf("expected 2 sessions, got %d", store.Count())
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		store, built := newTestStore()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				store.GetOrCreate(fmt.Sprintf("s%d", i%5))
			}(i)
		}
		wg.Wait()

		if store.Count() != 5 {
			t.Errorf("expected 5 sessions, got %d", store.Count())
		}
		if *built != 5 {
			t.Errorf("expected 5 factory calls, got %d", *built)
		}
	})
}

func TestGetSession(t *testing.T) {
	store, _ := newTestStore()
	store.GetOrCreate("known")

	if _, err := store.GetSession("known"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := store.GetSession("unknown"); err == nil {
		t.Error("expected error for unknown session")
	}

	store.DeleteSession("known")
	if _, err := store.GetSession("known"); err == nil {
		t.Error("expected error after delete")
	}
}

func TestSweep(t *testing.T) {
	store, _ := newTestStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.GetOrCreate("old")
	now = now.Add(90 * time.Minute)
	store.GetOrCreate("fresh")
	now = now.Add(45 * time.Minute)

	evicted := store.Sweep(time.Hour)

	if len(evicted) != 1 || evicted[0] != "old" {
		t.Errorf("expected only old to be evicted, got %v", evicted)
	}
	if _, err := store.GetSession("fresh"); err != nil {
		t.Errorf("fresh session was swept: %v", err)
	}
}

func TestRunJanitor(t *testing.T) {
	store, _ := newTestStore()
	store.GetOrCreate("idle").Touch(time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	evicted := make(chan string, 1)
	done := make(chan struct{})
	go func() {
		store.RunJanitor(ctx, 5*time.Millisecond, time.Minute, func(id string) { evicted <- id })
		close(done)
	}()

	select {
	case id := <-evicted:
		if id != "idle" {
			t.Errorf("expected idle to be evicted, got %q", id)
		}
	case <-time.After(time.Second):
		t.Fatal("janitor did not sweep")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop on cancel")
	}
}
