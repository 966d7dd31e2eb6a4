package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestViewerRegistry_ReusesViewModel(t *testing.T) {
	reg := NewViewerRegistry(zap.NewNop(), mockSnapshot(), ViewModelOptions{SidebarOpen: true}, time.Hour)

	a := reg.Get("v1")
	b := reg.Get(" v1 ")
	if a != b {
		t.Fatalf("expected same view model for same viewer")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 viewer, got %d", reg.Len())
	}
}

func TestViewerRegistry_ViewersAreIsolated(t *testing.T) {
	reg := NewViewerRegistry(zap.NewNop(), mockSnapshot(), ViewModelOptions{}, time.Hour)

	first := reg.Get("v1")
	second := reg.Get("v2")
	first.SendMessage("only mine")
	first.SelectConversation("2")

	if len(second.CurrentMessages()) != 4 {
		t.Fatalf("expected second viewer to keep seed messages, got %d", len(second.CurrentMessages()))
	}
	if second.ActiveConversationID() != "1" {
		t.Fatalf("expected second viewer selection untouched")
	}
}

func TestViewerRegistry_ForgetResetsState(t *testing.T) {
	reg := NewViewerRegistry(zap.NewNop(), mockSnapshot(), ViewModelOptions{}, time.Hour)
	reg.Get("v1").SendMessage("hello")

	reg.Forget("v1")
	if reg.Len() != 0 {
		t.Fatalf("expected registry empty")
	}
	if got := len(reg.Get("v1").CurrentMessages()); got != 4 {
		t.Fatalf("expected fresh state from seed, got %d messages", got)
	}
}

func TestViewerRegistry_ConcurrentGet(t *testing.T) {
	reg := NewViewerRegistry(zap.NewNop(), mockSnapshot(), ViewModelOptions{}, time.Hour)

	var wg sync.WaitGroup
	results := make([]*ChatViewModel, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.Get("shared")
		}(i)
	}
	wg.Wait()

	for _, vm := range results {
		if vm != results[0] {
			t.Fatalf("expected a single view model for concurrent callers")
		}
	}
}

func TestViewerRegistry_EvictsIdleViewers(t *testing.T) {
	reg := NewViewerRegistry(zap.NewNop(), mockSnapshot(), ViewModelOptions{}, time.Hour)
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		reg.Get(fmt.Sprintf("anon-%d", i))
	}
	if reg.Len() != 100 {
		t.Fatalf("expected 100 viewers, got %d", reg.Len())
	}

	now = now.Add(30 * time.Minute)
	kept := reg.Get("anon-0")
	kept.SendMessage("still here")

	now = now.Add(45 * time.Minute)
	reg.Get("fresh")
	if reg.Len() != 2 {
		t.Fatalf("expected idle viewers evicted, got %d", reg.Len())
	}
	if got := len(reg.Get("anon-0").CurrentMessages()); got != 5 {
		t.Fatalf("expected active viewer state kept, got %d messages", got)
	}

	now = now.Add(2 * time.Hour)
	reg.Get("later")
	if reg.Len() != 1 {
		t.Fatalf("expected only the newest viewer, got %d", reg.Len())
	}
}
