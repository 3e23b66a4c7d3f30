package core

import (
	"strings"
	"testing"
)

func TestTerseReporter(t *testing.T) {
	var sb strings.Builder
	r := NewTerseReporter(&sb)

	r.Progress() // must emit nothing
	r.Report(Delta{Overflows: 0, Ticks: 6036})
	r.Report(Delta{Overflows: 0, Ticks: 500})
	r.Progress()
	r.Report(Delta{Overflows: 2, Ticks: 0})

	want := "6036\n500\n0\n"
	if got := sb.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestVerboseReporter(t *testing.T) {
	var sb strings.Builder
	r := NewVerboseReporter(&sb)

	r.Progress()
	r.Progress()
	r.Progress()
	r.Report(Delta{Overflows: 0, Ticks: 6036})

	want := "...\noverflows: 0\nticks: 6036\n"
	if got := sb.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestVerboseReporterNoDots(t *testing.T) {
	var sb strings.Builder
	r := NewVerboseReporter(&sb)

	// Without a dot run there must be no leading blank line.
	r.Report(Delta{Overflows: 1, Ticks: 42})

	want := "overflows: 1\nticks: 42\n"
	if got := sb.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestVerboseReporterDotRunResets(t *testing.T) {
	var sb strings.Builder
	r := NewVerboseReporter(&sb)

	r.Progress()
	r.Report(Delta{Ticks: 1})
	r.Report(Delta{Ticks: 2})
	r.Progress()
	r.Report(Delta{Ticks: 3})

	want := ".\noverflows: 0\nticks: 1\noverflows: 0\nticks: 2\n.\noverflows: 0\nticks: 3\n"
	if got := sb.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBanner(t *testing.T) {
	var sb strings.Builder
	cfg := DefaultConfig()
	cfg.Verbose = true
	Banner(&sb, cfg)

	got := sb.String()
	wantLines := []string{
		"pulsespan pulse meter",
		"polarity: rising",
		"filter: on",
		"mode: repeat",
		"tick rate: 2000000 Hz",
		"cycle delay: 10 ms",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("banner missing line %q in %q", line, got)
		}
	}
}

func TestBannerOneShotFalling(t *testing.T) {
	var sb strings.Builder
	cfg := DefaultConfig()
	cfg.Polarity = EdgeFalling
	cfg.Repeat = false
	cfg.Filter = false
	Banner(&sb, cfg)

	got := sb.String()
	for _, line := range []string{"polarity: falling", "filter: off", "mode: one-shot"} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("banner missing line %q in %q", line, got)
		}
	}
}
