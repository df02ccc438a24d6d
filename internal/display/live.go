// Package display keeps a rendered view of one city's current conditions live
// between fetches: a clock that advances every second and an "updated N
// minutes ago" label that is recomputed every minute.
package display

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/derive"
	"github.com/bobby-s-dev/weather-dashboard/internal/models"
	"github.com/bobby-s-dev/weather-dashboard/internal/scheduler"
)

const (
	DefaultClockTick       = time.Second
	DefaultElapsedInterval = time.Minute
)

// Frame is what a renderer receives on every update.
type Frame struct {
	Clock      string
	Updated    string
	Conditions models.CurrentConditions
}

type Options struct {
	ClockTick       time.Duration
	ElapsedInterval time.Duration
	Unit            models.Unit
}

// Live binds a snapshot to a time context and two independent timers.
type Live struct {
	ctx      *clock.Context
	snapshot *models.RawSnapshot
	unit     models.Unit
	render   func(Frame)

	clockTask   *scheduler.Task
	elapsedTask *scheduler.Task

	mu      sync.Mutex
	updated string
}

func NewLive(ctx *clock.Context, snapshot *models.RawSnapshot, opts Options, render func(Frame), logger *zap.Logger) *Live {
	if opts.ClockTick <= 0 {
		opts.ClockTick = DefaultClockTick
	}
	if opts.ElapsedInterval <= 0 {
		opts.ElapsedInterval = DefaultElapsedInterval
	}
	if opts.Unit == "" {
		opts.Unit = models.Celsius
	}

	l := &Live{
		ctx:      ctx,
		snapshot: snapshot,
		unit:     opts.Unit,
		render:   render,
	}
	l.clockTask = scheduler.NewTask("clock", opts.ClockTick, l.onTick, logger)
	l.elapsedTask = scheduler.NewTask("elapsed", opts.ElapsedInterval, l.onElapsed, logger)
	return l
}

// Start launches both timers. The elapsed label is computed before the first
// frame is rendered.
func (l *Live) Start() {
	l.elapsedTask.Start()
	l.clockTask.Start()
}

// Stop cancels both timers. A stopped display does no further work.
func (l *Live) Stop() {
	l.clockTask.Stop()
	l.elapsedTask.Stop()
}

// StopElapsed cancels only the elapsed-label timer.
func (l *Live) StopElapsed() {
	l.elapsedTask.Stop()
}

func (l *Live) onTick() {
	l.ctx.Tick()
	if l.render != nil {
		l.render(l.Frame())
	}
}

func (l *Live) onElapsed() {
	label := models.Unavailable
	if l.snapshot != nil {
		if dt, ok := models.Epoch(l.snapshot.Dt); ok {
			label = l.ctx.ElapsedSince(time.Unix(dt, 0))
		}
	}
	l.mu.Lock()
	l.updated = label
	l.mu.Unlock()
}

// Frame derives the current view from the held instant.
func (l *Live) Frame() Frame {
	now := l.ctx.Now()
	conditions := derive.NormalizeCurrent(l.snapshot, now, l.unit)

	l.mu.Lock()
	updated := l.updated
	l.mu.Unlock()
	conditions.Updated = updated

	return Frame{
		Clock:      clock.Localize(now, l.snapshot.Offset()).Format("15:04:05"),
		Updated:    updated,
		Conditions: conditions,
	}
}
