package clock

import (
	"testing"
	"time"
)

func TestManualTimerFiresOnceAtDue(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	tm := m.NewTimer(5 * time.Second)

	m.Advance(4 * time.Second)
	select {
	case <-tm.C():
		t.Fatalf("timer fired before due")
	default:
	}

	m.Advance(1 * time.Second)
	select {
	case at := <-tm.C():
		if !at.Equal(time.Unix(5, 0)) {
			t.Fatalf("fired at %v, want t+5s", at)
		}
	default:
		t.Fatalf("timer did not fire at due")
	}

	// one-shot: advancing further produces nothing
	m.Advance(time.Minute)
	select {
	case <-tm.C():
		t.Fatalf("one-shot timer fired twice")
	default:
	}
}

func TestManualTimerStop(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	tm := m.NewTimer(time.Second)
	if !tm.Stop() {
		t.Fatalf("Stop on pending timer should report true")
	}
	if tm.Stop() {
		t.Fatalf("second Stop should report false")
	}
	m.Advance(time.Minute)
	select {
	case <-tm.C():
		t.Fatalf("stopped timer fired")
	default:
	}
}

func TestManualTickerTicksAndDropsUnconsumed(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	tk := m.NewTicker(300 * time.Millisecond)

	// three periods elapse but the channel holds one tick, like time.Ticker
	m.Advance(900 * time.Millisecond)
	n := 0
	for {
		select {
		case <-tk.C():
			n++
			continue
		default:
		}
		break
	}
	if n != 1 {
		t.Fatalf("buffered ticks = %d, want 1", n)
	}

	// consuming each tick before the next Advance sees every period
	for i := 0; i < 3; i++ {
		m.Advance(300 * time.Millisecond)
		select {
		case <-tk.C():
		default:
			t.Fatalf("tick %d missing", i)
		}
	}
	tk.Stop()
	m.Advance(time.Second)
	select {
	case <-tk.C():
		t.Fatalf("stopped ticker ticked")
	default:
	}
}

func TestManualOrdersWaitersByDueThenCreation(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	a := m.NewTimer(2 * time.Second)
	b := m.NewTimer(1 * time.Second)

	m.Advance(3 * time.Second)

	at := <-a.C()
	bt := <-b.C()
	if !bt.Before(at) {
		t.Fatalf("later-due timer fired first: a=%v b=%v", at, bt)
	}
	if got := m.Now(); !got.Equal(time.Unix(3, 0)) {
		t.Fatalf("Now = %v after Advance, want t+3s", got)
	}
}

func TestSystemClockShape(t *testing.T) {
	c := System()
	before := time.Now()
	if c.Now().Before(before.Add(-time.Second)) {
		t.Fatalf("system Now out of range")
	}
	tm := c.NewTimer(time.Millisecond)
	select {
	case <-tm.C():
	case <-time.After(time.Second):
		t.Fatalf("system timer did not fire")
	}
	tk := c.NewTicker(time.Millisecond)
	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatalf("system ticker did not tick")
	}
	tk.Stop()
}
