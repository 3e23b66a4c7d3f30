//go:build rp2040

package main

import (
	"machine"
	"runtime/interrupt"
	"time"

	"pulsespan/core"
	"pulsespan/targets/pio"
)

// Build-time configuration. Edit and reflash; there is no runtime protocol.
const (
	tickHz        = 2000000 // 2 MHz, 0.5us resolution
	cycleDelayMs  = 10
	verboseOutput = false
	repeatMode    = true
	inputFilter   = true
	pulsePolarity = core.EdgeRising

	selfTestOnBoot           = true
	selfTestWidth  core.Tick = 800 // 400us at 2 MHz
	selfTestTol    core.Tick = 4
	selfTestPolls            = 200000
)

// Housekeeping task periods in microseconds.
const (
	dotPeriod = 250000
	ledPeriod = 50000
)

// Panics caught by the driver loop. Kept for inspection over a debugger.
var loopFaults uint32

func buildConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.Polarity = pulsePolarity
	cfg.Filter = inputFilter
	cfg.Verbose = verboseOutput
	cfg.Repeat = repeatMode
	cfg.CycleDelayMs = cycleDelayMs
	cfg.TickHz = tickHz
	cfg.SelfTest = selfTestOnBoot
	return cfg
}

func main() {
	// Disable the watchdog on boot to clear any state persisting across a
	// previous reset.
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	initUSB()
	// Give the host time to enumerate the CDC port before the banner.
	time.Sleep(2 * time.Second)

	cfg := buildConfig()
	if err := cfg.Validate(); err != nil {
		fatal("config: " + err.Error())
	}

	var rep core.Reporter = core.NewTerseReporter(machine.Serial)
	if cfg.Verbose {
		rep = core.NewVerboseReporter(machine.Serial)
	}
	meter, err := core.NewMeter(cfg, rep)
	if err != nil {
		fatal("meter: " + err.Error())
	}

	// The interrupt hooks must have a live meter before the counter or the
	// capture pin can be brought up. During self-test that is a dedicated
	// one-shot meter so calibration never reaches the report stream.
	var selfMeter *core.Meter
	activeMeter = meter
	if cfg.SelfTest {
		selfCfg := cfg
		selfCfg.Repeat = false
		selfCfg.Verbose = false
		selfMeter, err = core.NewMeter(selfCfg, core.NopReporter{})
		if err != nil {
			fatal("self-test meter: " + err.Error())
		}
		activeMeter = selfMeter
	}

	if err := initCounter(machine.CPUFrequency(), cfg.TickHz); err != nil {
		fatal("counter: " + err.Error())
	}
	if err := initCapture(capturePin, cfg.Filter); err != nil {
		fatal("capture: " + err.Error())
	}
	led := newStatusLED(statusPin)

	if cfg.Verbose {
		core.Banner(machine.Serial, cfg)
	}

	if cfg.SelfTest {
		led.set(ledTesting)

		pulser := pio.NewPulser(0, 0)
		if err := pulser.Init(pulserPin, cfg.Polarity, cfg.TickHz); err != nil {
			fatal("pulser: " + err.Error())
		}
		core.SetPulseDriver(pulser)

		if err := core.RunSelfTest(selfMeter, selfTestWidth, selfTestTol, selfTestPolls); err != nil {
			writeSerial("self-test: FAIL: " + err.Error() + "\n")
			led.setFault()
		} else {
			writeSerial("self-test: ok (" + utoa(uint32(selfMeter.Last().Wide())) + " ticks)\n")
		}

		// Swap the hooks over to the measuring meter. Masked so an edge
		// cannot land between the pointer read and write.
		state := interrupt.Disable()
		activeMeter = meter
		interrupt.Restore(state)
	}

	var tasks core.TaskList
	now := hardwareUptime()
	if cfg.Verbose {
		tasks.Schedule(&core.Task{
			WakeAt: now + dotPeriod,
			Run: func(t *core.Task) uint8 {
				if meter.Waiting() {
					rep.Progress()
				}
				t.WakeAt += dotPeriod
				return core.TaskReschedule
			},
		})
	}
	tasks.Schedule(&core.Task{
		WakeAt: now + ledPeriod,
		Run: func(t *core.Task) uint8 {
			led.refresh(meter)
			t.WakeAt += ledPeriod
			return core.TaskReschedule
		},
	})

	cycleDelay := time.Duration(cfg.CycleDelayMs) * time.Millisecond
	for {
		// Recover from panics in the driver loop to keep the firmware up.
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopFaults++
				}
			}()

			meter.Poll()
			tasks.Dispatch(hardwareUptime())
		}()

		time.Sleep(cycleDelay)
	}
}

// initUSB brings up the CDC serial port. On the RP2040 machine.Serial is USB
// CDC, not a hardware UART; the descriptors come from the runtime.
func initUSB() {
	if err := machine.Serial.Configure(machine.UARTConfig{}); err != nil {
		return
	}
}

// fatal reports an unrecoverable setup failure and parks. The watchdog stays
// disabled so the message remains readable on the terminal.
func fatal(msg string) {
	writeSerial("fatal: " + msg + "\n")
	for {
		time.Sleep(time.Second)
	}
}

func writeSerial(s string) {
	machine.Serial.Write([]byte(s))
}

// utoa converts a tick count to decimal without pulling in strconv.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
