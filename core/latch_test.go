package core

import "testing"

func TestLatchRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		s    Snapshot
	}{
		{"zero", Snapshot{}},
		{"tick only", Snapshot{Epoch: 0, Tick: 60000}},
		{"epoch only", Snapshot{Epoch: 7, Tick: 0}},
		{"both", Snapshot{Epoch: 123456, Tick: 65535}},
		{"max", Snapshot{Epoch: 0xffffffff, Tick: 0xffff}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var l latch
			l.Store(tc.s)
			got := l.Load()
			if got != tc.s {
				t.Errorf("expected %+v, got %+v", tc.s, got)
			}
		})
	}
}

func TestLatchOverwrite(t *testing.T) {
	var l latch
	l.Store(Snapshot{Epoch: 1, Tick: 100})
	l.Store(Snapshot{Epoch: 2, Tick: 200})

	got := l.Load()
	if got.Epoch != 2 || got.Tick != 200 {
		t.Errorf("expected the newer capture to win, got %+v", got)
	}
}

func TestLatchClear(t *testing.T) {
	var l latch
	l.Store(Snapshot{Epoch: 9, Tick: 9})
	l.Clear()

	if got := l.Load(); got != (Snapshot{}) {
		t.Errorf("expected zero snapshot after clear, got %+v", got)
	}
}
