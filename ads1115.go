// Package ads1115 drives the TI ADS1115 16-bit delta-sigma ADC over I²C,
// with single-shot measurements and continuous acquisition paced by the
// ALERT/RDY conversion ready pin.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/ads1115.pdf
package ads1115

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

var (
	// ErrInvalidChannel is returned with a zero result when a single-ended
	// channel outside 0-3 is requested. No bus transaction is issued.
	ErrInvalidChannel = errors.New("ads1115: invalid single-ended channel")
	// ErrBusy is returned by single-shot measurements during a continuous run.
	ErrBusy = errors.New("ads1115: continuous acquisition in progress")
	// ErrAlreadyRunning is returned by StartContinuous during a run.
	ErrAlreadyRunning = errors.New("ads1115: continuous acquisition already started")
	// ErrNotRunning is returned by Poll and StopContinuous outside a run.
	ErrNotRunning = errors.New("ads1115: continuous acquisition not running")
)

// Opts holds various configuration options for the device
type Opts struct {
	// Addr is only used to name the device in errors; the WordBus already
	// targets the device.
	Addr uint16
	// ConversionDelay is waited after every register write before the
	// result is read. It is a fixed delay, not a conversion-complete poll.
	ConversionDelay time.Duration
	// Config is the initial register configuration.
	Config Config
	// Clock timestamps samples. Defaults to the real clock.
	Clock clockwork.Clock
}

func DefaultOptions() *Opts {
	return &Opts{
		Addr:            AddressGND,
		ConversionDelay: DefaultConversionDelay,
		Config:          DefaultConfig(),
	}
}

// New returns a Dev talking over bus. Nothing is written to the device until
// a measurement, a threshold setter or StartContinuous is called.
func New(bus WordBus, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("ads1115: nil bus")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.ConversionDelay < 0 {
		return nil, fmt.Errorf("ads1115: invalid conversion delay: %v", opts.ConversionDelay)
	}

	d := &Dev{
		bus:   bus,
		delay: opts.ConversionDelay,
		cfg:   opts.Config,
		clock: opts.Clock,
		name:  fmt.Sprintf("ads1115(%#x)", opts.Addr),
	}
	if d.clock == nil {
		d.clock = clockwork.NewRealClock()
	}
	return d, nil
}

// Dev is a handle to an ADS1115.
//
// Dev is meant to be driven from one goroutine. The only state touched from
// the ready pin handler is the atomic ready flag.
type Dev struct {
	bus   WordBus
	delay time.Duration
	clock clockwork.Clock
	name  string

	mu    sync.Mutex
	cfg   Config
	state State
	run   *run

	ready atomic.Bool
}

func (d *Dev) String() string {
	if s, ok := d.bus.(fmt.Stringer); ok {
		return fmt.Sprintf("%s{%s}", d.name, s)
	}
	return d.name
}

// Config returns a copy of the current configuration.
func (d *Dev) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

func (d *Dev) SetOSMode(os OSMode) {
	d.mu.Lock()
	d.cfg.OS = os
	d.mu.Unlock()
}

func (d *Dev) OSMode() OSMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.OS
}

func (d *Dev) SetGain(g Gain) {
	d.mu.Lock()
	d.cfg.Gain = g
	d.mu.Unlock()
}

func (d *Dev) Gain() Gain {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Gain
}

func (d *Dev) SetMode(m Mode) {
	d.mu.Lock()
	d.cfg.Mode = m
	d.mu.Unlock()
}

func (d *Dev) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Mode
}

func (d *Dev) SetRate(r Rate) {
	d.mu.Lock()
	d.cfg.Rate = r
	d.mu.Unlock()
}

func (d *Dev) Rate() Rate {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Rate
}

func (d *Dev) SetCompMode(c CompMode) {
	d.mu.Lock()
	d.cfg.CompMode = c
	d.mu.Unlock()
}

func (d *Dev) CompMode() CompMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.CompMode
}

func (d *Dev) SetCompPol(c CompPol) {
	d.mu.Lock()
	d.cfg.CompPol = c
	d.mu.Unlock()
}

func (d *Dev) CompPol() CompPol {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.CompPol
}

func (d *Dev) SetCompLat(c CompLat) {
	d.mu.Lock()
	d.cfg.CompLat = c
	d.mu.Unlock()
}

func (d *Dev) CompLat() CompLat {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.CompLat
}

func (d *Dev) SetCompQue(c CompQue) {
	d.mu.Lock()
	d.cfg.CompQue = c
	d.mu.Unlock()
}

func (d *Dev) CompQue() CompQue {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.CompQue
}

// SetLowThreshold stores t and writes it to the Lo_thresh register.
func (d *Dev) SetLowThreshold(t int16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeThreshold(lowThreshReg, &d.cfg.LowThreshold, t)
}

func (d *Dev) LowThreshold() int16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.LowThreshold
}

// SetHighThreshold stores t and writes it to the Hi_thresh register.
func (d *Dev) SetHighThreshold(t int16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeThreshold(highThreshReg, &d.cfg.HighThreshold, t)
}

func (d *Dev) HighThreshold() int16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.HighThreshold
}

// MeasureSingleEnded measures channel ch (0-3) against GND. Negative inputs
// are not supported by the device so the result is never negative.
//
// For channels outside 0-3 nothing is sent to the device and 0 is returned
// along with ErrInvalidChannel.
func (d *Dev) MeasureSingleEnded(ch int) (uint16, error) {
	m, ok := SingleEnded(ch)
	if !ok {
		return 0, ErrInvalidChannel
	}
	v, err := d.Measure(m)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// MeasureDifferential measures the voltage difference of p. Pairs other than
// Diff01, Diff03, Diff13 and Diff23 measure Diff01.
func (d *Dev) MeasureDifferential(p DiffPair) (int16, error) {
	return d.Measure(Differential(p))
}

// Measure writes the config word for m, waits the conversion delay and
// returns the conversion register.
func (d *Dev) Measure(m Mux) (int16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.measure(m)
}

// MeasureVoltage is Measure scaled by the gain in effect.
func (d *Dev) MeasureVoltage(m Mux) (physic.ElectricPotential, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.measure(m)
	if err != nil {
		return 0, err
	}
	return d.cfg.Gain.Voltage(v), nil
}

// ReadConfig reads back and decodes the config register.
func (d *Dev) ReadConfig() (Config, Mux, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, err := d.readReg(configReg)
	if err != nil {
		return Config{}, 0, err
	}
	c, m := Decode(w)
	c.LowThreshold = d.cfg.LowThreshold
	c.HighThreshold = d.cfg.HighThreshold
	return c, m, nil
}

// Halt stops any continuous acquisition and puts the device back in
// power-down single-shot mode. The power-down word is written even when
// stopping the run fails.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var err error
	if d.run != nil {
		err = d.stop()
	}
	c := d.cfg
	c.OS = OSNoEffect
	c.Mode = ModeSingle
	return multierr.Append(err, d.writeReg(configReg, Encode(c, MuxDiff01)))
}

func (d *Dev) measure(m Mux) (int16, error) {
	if d.run != nil {
		return 0, ErrBusy
	}
	if err := d.writeReg(configReg, Encode(d.cfg, m)); err != nil {
		return 0, err
	}
	time.Sleep(d.delay)
	v, err := d.readReg(conversionReg)
	return int16(v), err
}

func (d *Dev) readReg(reg uint8) (uint16, error) {
	w, err := d.bus.ReadWord(reg)
	if err != nil {
		return 0, d.wrap(err)
	}
	return Swap16(w), nil
}

func (d *Dev) writeReg(reg uint8, v uint16) error {
	if err := d.bus.WriteWord(reg, Swap16(v)); err != nil {
		return d.wrap(err)
	}
	return nil
}

func (d *Dev) wrap(err error) error {
	return fmt.Errorf("%s: %w", d.name, err)
}

var _ conn.Resource = &Dev{}
