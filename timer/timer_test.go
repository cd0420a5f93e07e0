package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestExpiryManager_Fires(t *testing.T) {
	manager := NewExpiryManager(5 * time.Millisecond)
	defer manager.Stop()

	fired := make(chan int, 1)
	manager.Schedule(1, 10*time.Millisecond, func(key int) {
		fired <- key
	})

	select {
	case key := <-fired:
		if key != 1 {
			t.Errorf("Expected key 1, got %d", key)
		}
	case <-time.After(time.Second):
		t.Fatal("Scheduled task never fired")
	}
}

func TestExpiryManager_RescheduleReplaces(t *testing.T) {
	manager := NewExpiryManager(5 * time.Millisecond)
	defer manager.Stop()

	var first, second atomic.Int32
	manager.Schedule(1, 10*time.Millisecond, func(int) { first.Add(1) })
	manager.Schedule(1, 20*time.Millisecond, func(int) { second.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if first.Load() != 0 {
		t.Error("Replaced task should not fire")
	}
	if second.Load() != 1 {
		t.Errorf("Replacement task should fire once, fired %d times", second.Load())
	}
}

func TestExpiryManager_Cancel(t *testing.T) {
	manager := NewExpiryManager(5 * time.Millisecond)
	defer manager.Stop()

	var fired atomic.Int32
	manager.Schedule(1, 10*time.Millisecond, func(int) { fired.Add(1) })
	manager.Cancel(1)

	time.Sleep(60 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("Canceled task should not fire")
	}
}

func TestExpiryManager_IndependentKeys(t *testing.T) {
	manager := NewExpiryManager(5 * time.Millisecond)
	defer manager.Stop()

	fired := make(chan int, 2)
	callback := func(key int) { fired <- key }
	manager.Schedule(1, 10*time.Millisecond, callback)
	manager.Schedule(2, 15*time.Millisecond, callback)
	manager.Cancel(1)

	select {
	case key := <-fired:
		if key != 2 {
			t.Errorf("Expected only key 2 to fire, got %d", key)
		}
	case <-time.After(time.Second):
		t.Fatal("Task for key 2 never fired")
	}
}

func TestExpiryManager_RescheduleFromCallback(t *testing.T) {
	manager := NewExpiryManager(5 * time.Millisecond)
	defer manager.Stop()

	fired := make(chan struct{}, 2)
	var once atomic.Bool
	var callback func(key int)
	callback = func(key int) {
		fired <- struct{}{}
		if once.CompareAndSwap(false, true) {
			manager.Schedule(key, 10*time.Millisecond, callback)
		}
	}
	manager.Schedule(1, 10*time.Millisecond, callback)

	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("Expected 2 firings, got %d", i)
		}
	}
}
