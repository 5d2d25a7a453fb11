package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/okulov/casetrack/internal/model"
)

func dropEvent(name string) model.Event {
	return model.Event{Kind: model.EventDrop, Drop: model.Drop{Name: name}}
}

func TestPublishNext_Order(t *testing.T) {
	f := New(4)

	for i := 0; i < 10; i++ {
		if !f.Publish(dropEvent(fmt.Sprintf("item-%d", i))) {
			t.Fatalf("Publish %d returned false", i)
		}
	}

	for i := 0; i < 10; i++ {
		ev, ok := f.Next()
		if !ok {
			t.Fatalf("Next %d returned closed", i)
		}
		want := fmt.Sprintf("item-%d", i)
		if ev.Drop.Name != want {
			t.Errorf("event %d = %q, want %q (order must be preserved)", i, ev.Drop.Name, want)
		}
	}
}

func TestGrow(t *testing.T) {
	f := New(2)

	// Publishing past the initial capacity must grow, not drop.
	for i := 0; i < 100; i++ {
		if !f.Publish(dropEvent(fmt.Sprintf("%d", i))) {
			t.Fatalf("Publish %d returned false", i)
		}
	}

	st := f.Snapshot()
	if st.Pending != 100 {
		t.Errorf("Pending = %d, want 100", st.Pending)
	}
	if st.Resizes == 0 {
		t.Error("Resizes = 0, want > 0")
	}
	if st.Capacity < 100 {
		t.Errorf("Capacity = %d, want >= 100", st.Capacity)
	}
}

func TestGrow_WrappedRing(t *testing.T) {
	f := New(8)

	// Force head to advance so the ring wraps before growing.
	for i := 0; i < 4; i++ {
		f.Publish(dropEvent(fmt.Sprintf("pre-%d", i)))
	}
	for i := 0; i < 4; i++ {
		if _, ok := f.TryNext(); !ok {
			t.Fatal("TryNext returned empty")
		}
	}
	for i := 0; i < 20; i++ {
		f.Publish(dropEvent(fmt.Sprintf("%d", i)))
	}

	for i := 0; i < 20; i++ {
		ev, ok := f.TryNext()
		if !ok {
			t.Fatalf("TryNext %d returned empty", i)
		}
		if ev.Drop.Name != fmt.Sprintf("%d", i) {
			t.Errorf("event %d = %q, want %d", i, ev.Drop.Name, i)
		}
	}
}

func TestClose(t *testing.T) {
	f := New(4)
	f.Publish(dropEvent("last"))
	f.Close()

	if f.Publish(dropEvent("late")) {
		t.Error("Publish after Close = true, want false")
	}

	// Pending events still drain after close.
	ev, ok := f.Next()
	if !ok || ev.Drop.Name != "last" {
		t.Errorf("Next after Close = (%v, %v), want pending event", ev, ok)
	}

	if _, ok := f.Next(); ok {
		t.Error("Next on drained closed feed = true, want false")
	}
}

func TestNext_BlocksUntilPublish(t *testing.T) {
	f := New(4)

	got := make(chan model.Event, 1)
	go func() {
		ev, _ := f.Next()
		got <- ev
	}()

	time.Sleep(10 * time.Millisecond)
	f.Publish(dropEvent("woken"))

	select {
	case ev := <-got:
		if ev.Drop.Name != "woken" {
			t.Errorf("received %q, want woken", ev.Drop.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not wake after Publish")
	}
}
