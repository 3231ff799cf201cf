package practice

import (
	"sync"
	"testing"
	"time"
)

// collectTicks 启动一个毫秒级倒计时并等待自然到期
func collectTicks(t *testing.T, seconds int) ([]int, int) {
	t.Helper()
	cd := &tickerCountdown{interval: time.Millisecond}

	var mu sync.Mutex
	var ticks []int
	expires := 0
	done := make(chan struct{})

	cd.Start(seconds, func(remaining int) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	}, func() {
		mu.Lock()
		expires++
		mu.Unlock()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not expire")
	}

	// 到期之后不允许再有任何 tick
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	return append([]int(nil), ticks...), expires
}

func TestCountdownTerminates(t *testing.T) {
	ticks, expires := collectTicks(t, 5)

	if len(ticks) != 5 {
		t.Fatalf("got %d ticks, want 5: %v", len(ticks), ticks)
	}
	for i, want := range []int{4, 3, 2, 1, 0} {
		if ticks[i] != want {
			t.Errorf("ticks[%d] = %d, want %d", i, ticks[i], want)
		}
	}
	if expires != 1 {
		t.Errorf("expire fired %d times, want exactly 1", expires)
	}
}

func TestCountdownNeverNegative(t *testing.T) {
	ticks, _ := collectTicks(t, 3)
	for _, v := range ticks {
		if v < 0 {
			t.Fatalf("tick delivered negative remaining %d", v)
		}
	}
}

func TestCountdownStop(t *testing.T) {
	cd := &tickerCountdown{interval: 10 * time.Millisecond}

	var mu sync.Mutex
	ticks, expires := 0, 0

	cd.Start(1000, func(int) {
		mu.Lock()
		ticks++
		mu.Unlock()
	}, func() {
		mu.Lock()
		expires++
		mu.Unlock()
	})

	time.Sleep(35 * time.Millisecond)
	cd.Stop()

	mu.Lock()
	seen := ticks
	mu.Unlock()

	// 取消是检查式的：Stop 之后不得再有任何回调
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if ticks != seen {
		t.Errorf("ticks advanced after Stop: %d -> %d", seen, ticks)
	}
	if expires != 0 {
		t.Errorf("expire fired %d times after Stop, want 0", expires)
	}
}

func TestCountdownStopIdempotent(t *testing.T) {
	cd := NewCountdown()

	// 未启动时 Stop 是空操作
	cd.Stop()
	cd.Stop()

	cd.Start(1000, func(int) {}, func() {})
	cd.Stop()
	cd.Stop()
}

func TestCountdownZeroSeconds(t *testing.T) {
	cd := &tickerCountdown{interval: time.Millisecond}

	done := make(chan struct{})
	cd.Start(0, func(int) {
		t.Error("tick delivered for zero-second countdown")
	}, func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("zero-second countdown did not expire immediately")
	}
}
