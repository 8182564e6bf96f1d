package timer

import (
	"testing"
	"time"
)

func TestTickerFiresAndStops(t *testing.T) {
	tk := NewTicker(5 * time.Millisecond)
	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("ticker never fired")
	}

	tk.Reset(10 * time.Millisecond)
	if tk.Interval() != 10*time.Millisecond {
		t.Fatalf("Interval() = %v after Reset", tk.Interval())
	}

	tk.Stop()
	tk.Stop()
	if tk.C() != nil {
		t.Fatal("stopped ticker should expose a nil channel")
	}
}

func TestManual(t *testing.T) {
	m := NewManual(150 * time.Millisecond)
	if !m.Fire() {
		t.Fatal("first Fire should queue a tick")
	}
	if m.Fire() {
		t.Fatal("second Fire should not queue while one is pending")
	}
	<-m.C()

	m.Reset(150 * time.Millisecond)
	m.Reset(140 * time.Millisecond)
	if m.Resets() != 1 || m.Interval() != 140*time.Millisecond {
		t.Fatalf("resets=%d interval=%v", m.Resets(), m.Interval())
	}

	m.Stop()
	if m.Fire() || m.C() != nil || !m.Stopped() {
		t.Fatal("stopped manual timer should not fire")
	}
}

func TestManualFactoryRecords(t *testing.T) {
	var armed []*Manual
	f := ManualFactory(&armed)
	f(time.Second)
	f(2 * time.Second)
	if len(armed) != 2 || armed[1].Interval() != 2*time.Second {
		t.Fatalf("armed = %d timers", len(armed))
	}
}
