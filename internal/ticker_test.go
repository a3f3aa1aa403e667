package internal

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManualTicker(t *testing.T) {
	ticker := NewManualTicker()
	if ticker.Fire(testNow) {
		t.Error("Fire() without a callback should report false")
	}

	var count int
	ticker.OnTick(func(time.Time) { count++ })
	ticker.Fire(testNow)
	ticker.Fire(testNow)
	if count != 2 {
		t.Errorf("callback ran %d times, want 2", count)
	}

	ticker.Cancel()
	if ticker.Fire(testNow) {
		t.Error("Fire() after Cancel() should report false")
	}
	if !ticker.Cancelled() || count != 2 {
		t.Errorf("Cancelled() = %v, count = %d", ticker.Cancelled(), count)
	}
}

func TestManualTicker_CancelFromCallback(t *testing.T) {
	ticker := NewManualTicker()
	ticker.OnTick(func(time.Time) { ticker.Cancel() })
	if !ticker.Fire(testNow) {
		t.Fatal("first Fire() should run")
	}
	if ticker.Fire(testNow) {
		t.Error("ticker cancelled inside its callback should stop")
	}
}

func TestManualTickers_TracksLatest(t *testing.T) {
	tickers := &ManualTickers{}
	if tickers.Fire(testNow) {
		t.Error("Fire() before New() should report false")
	}

	var first, second int
	tickers.New().OnTick(func(time.Time) { first++ })
	tickers.New().OnTick(func(time.Time) { second++ })
	tickers.Fire(testNow)

	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d; only the latest ticker should fire", first, second)
	}
}

func TestSecondTicker_StopsOnCancel(t *testing.T) {
	ticker := NewSecondTicker(2 * time.Millisecond)
	var count atomic.Int32
	fired := make(chan struct{}, 1)
	ticker.OnTick(func(time.Time) {
		count.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("SecondTicker never fired")
	}

	ticker.Cancel()
	ticker.Cancel()
	time.Sleep(10 * time.Millisecond)
	settled := count.Load()
	time.Sleep(20 * time.Millisecond)
	if count.Load() != settled {
		t.Error("SecondTicker kept firing after Cancel()")
	}
}

func TestNewSecondTicker_DefaultInterval(t *testing.T) {
	if ticker := NewSecondTicker(0); ticker.interval != time.Second {
		t.Errorf("interval = %v, want 1s", ticker.interval)
	}
}
