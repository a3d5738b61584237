package render

import (
	"context"
	"time"

	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

// Run draws frames until the window asks to close or ctx is cancelled.
// Cancellation is only observed between frames.
func (c *Context) Run(ctx context.Context) error {
	return runLoop(ctx, c.window, c, c.log, c.opts.StatsInterval)
}

func runLoop(ctx context.Context, events eventSource, d frameDriver, log logrus.FieldLogger, statsInterval time.Duration) error {
	stats := frameStats{interval: statsInterval, start: hrtime.Now()}

	for {
		select {
		case <-ctx.Done():
			log.WithField("frames", stats.total).Info("shutdown requested")
			return nil
		default:
		}

		events.PollEvents()
		if events.ShouldClose() {
			log.WithField("frames", stats.total).Info("window closed")
			return nil
		}

		frameStart := hrtime.Now()
		if err := drawFrame(d); err != nil {
			return err
		}
		stats.observe(hrtime.Since(frameStart), log)
	}
}

// frameStats accumulates CPU-side frame times between reports.
type frameStats struct {
	interval time.Duration
	start    time.Duration

	total   int
	frames  int
	elapsed time.Duration
}

func (s *frameStats) observe(frameTime time.Duration, log logrus.FieldLogger) {
	s.total++
	s.frames++
	s.elapsed += frameTime

	if s.interval <= 0 {
		return
	}

	window := hrtime.Since(s.start)
	if window < s.interval {
		return
	}

	log.WithFields(logrus.Fields{
		"fps":       float64(s.frames) / window.Seconds(),
		"frameTime": s.elapsed / time.Duration(s.frames),
	}).Debug("frame statistics")

	s.start += window
	s.frames = 0
	s.elapsed = 0
}
