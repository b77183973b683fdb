package ads1115

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// State is the continuous acquisition lifecycle state.
type State int

const (
	Idle State = iota
	Configured
	Armed
	Ready
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configured:
		return "configured"
	case Armed:
		return "armed"
	case Ready:
		return "ready"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type run struct {
	gain    Gain
	sink    Sink
	stopPin func() error
}

// StartContinuous switches the device to continuous conversions on m and
// arms pin. Each falling edge of ALERT/RDY marks a sample as ready; Poll
// fetches it and records it to sink. sink is owned by the Dev until
// StopContinuous.
//
// The comparator polarity and queue are forced to active-high and one
// conversion for the duration of the run, whatever the stored settings.
// A failure to arm pin is returned as is: the device is left configured but
// nothing will ever pace it.
func (d *Dev) StartContinuous(m Mux, pin ReadyPin, sink Sink) error {
	if pin == nil || sink == nil {
		return d.wrap(errors.New("nil ready pin or sink"))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.run != nil {
		return ErrAlreadyRunning
	}

	d.state = Idle
	if err := d.configureContinuous(m); err != nil {
		return err
	}
	d.state = Configured

	d.ready.Store(false)
	stop, err := pin.Watch(func() {
		// Runs in the pin's context: no bus access allowed here.
		d.ready.Store(true)
	})
	if err != nil {
		return d.wrap(fmt.Errorf("ready pin: %w", err))
	}
	d.run = &run{gain: d.cfg.Gain, sink: sink, stopPin: stop}
	d.state = Armed
	return nil
}

// Poll fetches and records the pending sample, if any. It reports whether a
// sample was recorded and is meant to be called in a loop from a single
// goroutine.
//
// The ready flag is cleared before the conversion register is read, so an
// edge arriving during the read is kept for the next Poll. Edges arriving
// between two polls are coalesced into one sample.
func (d *Dev) Poll() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.run == nil {
		return false, ErrNotRunning
	}
	if !d.ready.Swap(false) {
		return false, nil
	}
	w, err := d.readReg(conversionReg)
	if err != nil {
		return false, err
	}
	v := int16(w)
	s := Sample{Time: d.clock.Now(), Value: v, Voltage: d.run.gain.Voltage(v)}
	if err := d.run.sink.Record(s); err != nil {
		return false, d.wrap(fmt.Errorf("sink: %w", err))
	}
	return true, nil
}

// StopContinuous disarms the ready pin and closes the sink. A sample still
// pending is dropped.
func (d *Dev) StopContinuous() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.run == nil {
		return ErrNotRunning
	}
	return d.stop()
}

// Run calls Poll every interval, or as fast as possible when interval is not
// positive, until ctx is done or Poll fails.
func (d *Dev) Run(ctx context.Context, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}
	for {
		if _, err := d.Poll(); err != nil {
			return err
		}
		if tick == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}

// State returns the continuous acquisition state.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Armed && d.ready.Load() {
		return Ready
	}
	return d.state
}

// Pending reports whether a ready edge is waiting for Poll.
func (d *Dev) Pending() bool {
	return d.ready.Load()
}

// configureContinuous writes Lo_thresh = 0x0000 and Hi_thresh = 0xFFFF rather
// than the power-on 0x8000/0x7FFF: ALERT/RDY only reports conversion ready
// when the MSB of Hi_thresh is 1 and the MSB of Lo_thresh is 0.
func (d *Dev) configureContinuous(m Mux) error {
	if err := d.writeThreshold(lowThreshReg, &d.cfg.LowThreshold, readyLowThreshold); err != nil {
		return err
	}
	time.Sleep(d.delay)
	if err := d.writeThreshold(highThreshReg, &d.cfg.HighThreshold, readyHighThreshold); err != nil {
		return err
	}
	time.Sleep(d.delay)
	if err := d.writeReg(configReg, EncodeContinuous(d.cfg, m)); err != nil {
		return err
	}
	time.Sleep(d.delay)
	return nil
}

func (d *Dev) writeThreshold(reg uint8, field *int16, t int16) error {
	*field = t
	return d.writeReg(reg, uint16(t))
}

// stop must be called with d.mu held and d.run set.
func (d *Dev) stop() error {
	r := d.run
	d.run = nil
	d.state = Stopped

	var err error
	if perr := r.stopPin(); perr != nil {
		err = multierr.Append(err, d.wrap(fmt.Errorf("ready pin: %w", perr)))
	}
	d.ready.Store(false)
	if serr := r.sink.Close(); serr != nil {
		err = multierr.Append(err, d.wrap(fmt.Errorf("sink: %w", serr)))
	}
	return err
}
