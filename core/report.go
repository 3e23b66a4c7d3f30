package core

import "io"

// Reporter consumes measurement results. Report runs once per completed
// cycle from the poller; Progress is the waiting-indicator hook the
// housekeeping loop fires while the meter sits in a waiting state.
type Reporter interface {
	Report(Delta)
	Progress()
}

// TerseReporter prints one line per measurement, the bare tick count. This
// is the bulk-collection format.
type TerseReporter struct {
	w io.Writer
}

func NewTerseReporter(w io.Writer) *TerseReporter {
	return &TerseReporter{w: w}
}

func (r *TerseReporter) Report(d Delta) {
	io.WriteString(r.w, utoa(uint32(d.Ticks))+"\n")
}

// Progress is a no-op; terse output carries results only.
func (r *TerseReporter) Progress() {}

// VerboseReporter prints a dot per progress call while the meter waits and
// labelled result lines when a cycle completes. Meant for a human watching
// a terminal, not for collection.
type VerboseReporter struct {
	w       io.Writer
	dotsRun bool
}

func NewVerboseReporter(w io.Writer) *VerboseReporter {
	return &VerboseReporter{w: w}
}

func (r *VerboseReporter) Progress() {
	io.WriteString(r.w, ".")
	r.dotsRun = true
}

func (r *VerboseReporter) Report(d Delta) {
	if r.dotsRun {
		io.WriteString(r.w, "\n")
		r.dotsRun = false
	}
	io.WriteString(r.w, "overflows: "+utoa(uint32(d.Overflows))+"\n")
	io.WriteString(r.w, "ticks: "+utoa(uint32(d.Ticks))+"\n")
}

// NopReporter discards everything. The self-test meter uses it so
// calibration cycles stay off the wire.
type NopReporter struct{}

func (NopReporter) Report(Delta) {}
func (NopReporter) Progress()    {}

// Banner writes the startup configuration summary. Collectors skip lines
// they do not recognize, so the banner is transparent to them.
func Banner(w io.Writer, cfg Config) {
	mode := "one-shot"
	if cfg.Repeat {
		mode = "repeat"
	}
	io.WriteString(w, "pulsespan pulse meter\n")
	io.WriteString(w, "polarity: "+cfg.Polarity.String()+"\n")
	io.WriteString(w, "filter: "+onOff(cfg.Filter)+"\n")
	io.WriteString(w, "mode: "+mode+"\n")
	io.WriteString(w, "tick rate: "+utoa(cfg.TickHz)+" Hz\n")
	io.WriteString(w, "cycle delay: "+utoa(cfg.CycleDelayMs)+" ms\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
