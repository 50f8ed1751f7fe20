// Playback engine replaying a predicted trajectory as live telemetry.
package sim

import (
	"log/slog"
	"sync"
	"time"

	"rocketsim/internal/atmosphere"
	"rocketsim/internal/flight"
	"rocketsim/internal/telemetry"
)

// PlaybackStatus is the playback state machine's current state.
type PlaybackStatus string

const (
	StatusIdle      PlaybackStatus = "idle"
	StatusRunning   PlaybackStatus = "running"
	StatusPaused    PlaybackStatus = "paused"
	StatusCompleted PlaybackStatus = "completed"
)

// DefaultUpdateInterval is the telemetry cadence at 1x speed.
const DefaultUpdateInterval = 100 * time.Millisecond

// Playback replays a flight.Result as a time-interpolated telemetry stream.
// Wall time is read through the injected Clock; elapsed wall time times the
// speed factor gives the simulated flight time. A monotonic cursor tracks the
// bracketing trajectory points so each tick is O(1) amortized.
//
// Control methods and the tick loop share one mutex. Subscribers receive
// samples synchronously and must not call control methods from inside a
// callback.
type Playback struct {
	mu     sync.Mutex
	clock  Clock
	logger *slog.Logger

	interval time.Duration
	atm      atmosphere.Model
	speed    float64

	status   PlaybackStatus
	result   *flight.Result
	sampler  telemetry.Sampler
	cursor   int
	anchor   time.Time
	pausedAt time.Time
	current  float64 // simulated seconds

	subs   map[int]func(telemetry.TelemetryRow)
	nextID int

	tickStop chan struct{}
}

// NewPlayback creates an idle playback engine. A zero interval selects the
// default 100 ms cadence; the atmosphere model anchors the derived display
// temperature and pressure.
func NewPlayback(clock Clock, interval time.Duration, atm atmosphere.Model, logger *slog.Logger) *Playback {
	if clock == nil {
		clock = SystemClock
	}
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Playback{
		clock:    clock,
		logger:   logger,
		interval: interval,
		atm:      atm,
		speed:    1,
		status:   StatusIdle,
		subs:     make(map[int]func(telemetry.TelemetryRow)),
	}
}

// Subscribe registers a sample callback and returns its unsubscribe function.
// Unsubscribing is idempotent and safe from within a callback.
func (p *Playback) Subscribe(fn func(telemetry.TelemetryRow)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Start begins replaying the trajectory. Starting while already running is a
// no-op; starting without a usable trajectory is rejected.
func (p *Playback) Start(res *flight.Result, site flight.LaunchSite, mode telemetry.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status == StatusRunning {
		p.logger.Warn("playback already running, start ignored")
		return
	}
	if res == nil || len(res.Points) == 0 {
		p.logger.Warn("playback start rejected, no trajectory")
		return
	}
	p.result = res
	p.sampler = telemetry.Sampler{FlightID: res.FlightID, Mode: mode, Site: site, Atmos: p.atm}
	p.cursor = 0
	p.current = 0
	p.anchor = p.clock.Now()
	p.status = StatusRunning
	p.startTickerLocked()
	p.logger.Info("playback started", "flight_id", res.FlightID, "mode", string(mode), "total_s", res.TotalTime())
}

// Stop clears the timer and resets to idle. Subscribers stay registered.
func (p *Playback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTickerLocked()
	p.status = StatusIdle
	p.result = nil
	p.cursor = 0
	p.current = 0
}

// Pause suspends ticking. Pausing while not running is a no-op.
func (p *Playback) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != StatusRunning {
		p.logger.Warn("pause ignored", "status", string(p.status))
		return
	}
	p.stopTickerLocked()
	p.pausedAt = p.clock.Now()
	p.status = StatusPaused
}

// Resume shifts the wall-clock anchor forward by the paused duration so
// simulated time continues exactly where it left off.
func (p *Playback) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != StatusPaused {
		p.logger.Warn("resume ignored", "status", string(p.status))
		return
	}
	p.anchor = p.anchor.Add(p.clock.Now().Sub(p.pausedAt))
	p.status = StatusRunning
	p.startTickerLocked()
}

// SetSpeed changes the playback speed factor. While running the tick loop is
// torn down and recreated at the new cadence; while running or paused the
// anchor is rebased so simulated time stays continuous. Non-positive factors
// are rejected.
func (p *Playback) SetSpeed(factor float64) {
	if factor <= 0 {
		p.logger.Warn("ignoring non-positive playback speed", "factor", factor)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.status {
	case StatusRunning:
		p.stopTickerLocked()
		now := p.clock.Now()
		elapsed := now.Sub(p.anchor).Seconds() * p.speed
		p.speed = factor
		p.anchor = now.Add(-time.Duration(elapsed / factor * float64(time.Second)))
		p.startTickerLocked()
	case StatusPaused:
		// Rebase against the pause instant so Resume continues from the
		// same simulated time at the new rate.
		elapsed := p.pausedAt.Sub(p.anchor).Seconds() * p.speed
		p.speed = factor
		p.anchor = p.pausedAt.Add(-time.Duration(elapsed / factor * float64(time.Second)))
	default:
		p.speed = factor
	}
}

// Speed returns the current speed factor.
func (p *Playback) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Status returns the current playback state.
func (p *Playback) Status() PlaybackStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// CurrentTime returns the simulated flight time in seconds.
func (p *Playback) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// TotalTime returns the trajectory duration in seconds, 0 when idle.
func (p *Playback) TotalTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return 0
	}
	return p.result.TotalTime()
}

// Progress returns the replay fraction clamped to [0, 1].
func (p *Playback) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil || p.result.TotalTime() <= 0 {
		return 0
	}
	frac := p.current / p.result.TotalTime()
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

func (p *Playback) startTickerLocked() {
	stop := make(chan struct{})
	p.tickStop = stop
	cadence := time.Duration(float64(p.interval) / p.speed)
	go func() {
		ticker := time.NewTicker(cadence)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.tick()
			case <-stop:
				return
			}
		}
	}()
}

func (p *Playback) stopTickerLocked() {
	if p.tickStop != nil {
		close(p.tickStop)
		p.tickStop = nil
	}
}

// tick advances playback to the current wall time and emits one sample.
func (p *Playback) tick() {
	p.mu.Lock()
	if p.status != StatusRunning || p.result == nil {
		p.mu.Unlock()
		return
	}

	now := p.clock.Now()
	elapsed := now.Sub(p.anchor).Seconds() * p.speed
	total := p.result.TotalTime()
	points := p.result.Points

	var pt flight.Point
	if elapsed >= total {
		pt = points[len(points)-1]
		p.current = total
		p.status = StatusCompleted
		p.stopTickerLocked()
		p.logger.Info("playback completed", "flight_id", p.result.FlightID)
	} else {
		for p.cursor+1 < len(points) && points[p.cursor+1].TimeS < elapsed {
			p.cursor++
		}
		pt = interpolate(points[p.cursor], points[min(p.cursor+1, len(points)-1)], elapsed)
		p.current = elapsed
	}

	row := p.sampler.Sample(pt, now)
	subs := make([]func(telemetry.TelemetryRow), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(row)
	}
}

// interpolate blends two bracketing points linearly at simulated time tm.
func interpolate(a, b flight.Point, tm float64) flight.Point {
	if b.TimeS <= a.TimeS {
		return a
	}
	frac := (tm - a.TimeS) / (b.TimeS - a.TimeS)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return flight.Point{
		TimeS:    tm,
		Position: a.Position.Add(b.Position.Add(a.Position.Scale(-1)).Scale(frac)),
		Velocity: a.Velocity.Add(b.Velocity.Add(a.Velocity.Scale(-1)).Scale(frac)),
		Phase:    a.Phase,
	}
}
