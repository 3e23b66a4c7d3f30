package capture

import (
	"bufio"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"pulsespan/core"
)

// ErrStreamEnded reports that the serial stream closed before the requested
// number of samples arrived.
var ErrStreamEnded = errors.New("stream ended before enough samples arrived")

// Session drains measurement lines from a meter stream and keeps the
// samples.
type Session struct {
	scanner *bufio.Scanner
	parser  Parser
	log     zerolog.Logger

	samples []core.Delta
}

// NewSession wraps an open meter stream.
func NewSession(r io.Reader, log zerolog.Logger) *Session {
	return &Session{
		scanner: bufio.NewScanner(r),
		log:     log,
	}
}

// Collect reads lines until n samples have arrived or the stream ends. Each
// completed sample is handed to fn, if non-nil, as it arrives. n <= 0 means
// collect until the stream ends. There is no time limit; a meter waiting on
// a signal that never comes keeps the collector waiting with it.
func (s *Session) Collect(n int, fn func(core.Delta)) ([]core.Delta, error) {
	for s.scanner.Scan() {
		line := s.scanner.Text()
		d, ok := s.parser.Feed(line)
		if !ok {
			if line != "" {
				s.log.Debug().Str("line", line).Msg("skipped line")
			}
			continue
		}

		s.samples = append(s.samples, d)
		if fn != nil {
			fn(d)
		}
		if n > 0 && len(s.samples) >= n {
			return s.samples, nil
		}
	}

	if err := s.scanner.Err(); err != nil {
		return s.samples, err
	}
	if n > 0 && len(s.samples) < n {
		return s.samples, ErrStreamEnded
	}
	return s.samples, nil
}

// Samples returns everything collected so far.
func (s *Session) Samples() []core.Delta {
	return s.samples
}

// TickRate returns the tick rate announced in the device banner, or 0 if no
// banner was observed.
func (s *Session) TickRate() uint32 {
	return s.parser.TickRate()
}
