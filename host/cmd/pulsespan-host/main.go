// pulsespan-host collects pulse width measurements from a meter on a serial
// port. Samples go to stdout as they arrive, logs and the closing summary go
// to stderr, and the raw run can be exported as CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"pulsespan/core"
	"pulsespan/host/capture"
	"pulsespan/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	count   = flag.Int("count", 100, "Samples to collect, 0 to read until the stream ends")
	tickHz  = flag.Uint("tick-hz", 0, "Counter tick rate; 0 takes the rate from the device banner")
	csvPath = flag.String("csv", "", "Write collected samples to this CSV file")
	quiet   = flag.Bool("quiet", false, "Log errors only")
)

func main() {
	flag.Parse()

	if *quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open serial port")
	}
	defer port.Close()

	log.Info().Str("device", *device).Int("count", *count).Msg("collecting")

	sess := capture.NewSession(port, log)
	samples, err := sess.Collect(*count, func(d core.Delta) {
		fmt.Println(d.Wide())
	})
	if err != nil {
		log.Error().Err(err).Int("collected", len(samples)).Msg("collection stopped early")
	}
	if len(samples) == 0 {
		log.Fatal().Msg("no samples collected")
	}

	rate := uint32(*tickHz)
	if rate == 0 {
		rate = sess.TickRate()
	}

	sum := capture.Summarize(samples)
	ev := log.Info().
		Int("count", sum.Count).
		Uint64("min_ticks", sum.Min).
		Uint64("max_ticks", sum.Max).
		Float64("mean_ticks", sum.Mean).
		Float64("stddev_ticks", sum.StdDev)
	if rate != 0 {
		ev = ev.
			Float64("mean_us", capture.Micros(sum.Mean, rate)).
			Float64("stddev_us", capture.Micros(sum.StdDev, rate))
	}
	ev.Msg("summary")

	if *csvPath != "" {
		if err := writeCSV(*csvPath, samples, rate); err != nil {
			log.Fatal().Err(err).Msg("write csv")
		}
		log.Info().Str("path", *csvPath).Msg("csv written")
	}
}

// writeCSV exports one row per sample. The microsecond column stays empty
// when the tick rate is unknown rather than guessing a conversion.
func writeCSV(path string, samples []core.Delta, tickHz uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "overflows", "ticks", "width_ticks", "width_us"}); err != nil {
		f.Close()
		return err
	}
	for i, d := range samples {
		us := ""
		if tickHz != 0 {
			us = strconv.FormatFloat(capture.Micros(float64(d.Wide()), tickHz), 'f', 3, 64)
		}
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatUint(uint64(d.Overflows), 10),
			strconv.FormatUint(uint64(d.Ticks), 10),
			strconv.FormatUint(d.Wide(), 10),
			us,
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
