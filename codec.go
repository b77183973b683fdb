package ads1115

import (
	"fmt"
	"math/bits"

	"periph.io/x/conn/v3/physic"
)

// Config holds the logical contents of the config and threshold registers.
type Config struct {
	OS       OSMode
	Gain     Gain
	Mode     Mode
	Rate     Rate
	CompMode CompMode
	CompPol  CompPol
	CompLat  CompLat
	CompQue  CompQue

	LowThreshold  int16
	HighThreshold int16
}

// DefaultConfig returns the device power-on configuration, with OS set to
// start a conversion on every write.
func DefaultConfig() Config {
	return Config{
		OS:            OSSingle,
		Gain:          GainTwo,
		Mode:          ModeSingle,
		Rate:          Rate128,
		CompMode:      CompModeTraditional,
		CompPol:       CompPolActiveLow,
		CompLat:       CompLatNonLatching,
		CompQue:       CompQueNone,
		LowThreshold:  defaultLowThreshold,
		HighThreshold: defaultHighThreshold,
	}
}

// DiffPair names the positive and negative inputs of a differential
// measurement.
type DiffPair struct {
	Pos, Neg int
}

var (
	Diff01 = DiffPair{0, 1}
	Diff03 = DiffPair{0, 3}
	Diff13 = DiffPair{1, 3}
	Diff23 = DiffPair{2, 3}
)

func (p DiffPair) String() string {
	return fmt.Sprintf("AIN%d-AIN%d", p.Pos, p.Neg)
}

// SingleEnded returns the mux setting measuring channel ch against GND. It
// returns false for channels outside 0-3.
func SingleEnded(ch int) (Mux, bool) {
	switch ch {
	case 0:
		return MuxSingle0, true
	case 1:
		return MuxSingle1, true
	case 2:
		return MuxSingle2, true
	case 3:
		return MuxSingle3, true
	default:
		return 0, false
	}
}

// Differential returns the mux setting for p. Pairs the device cannot
// measure fall back to AIN0-AIN1.
func Differential(p DiffPair) Mux {
	switch p {
	case Diff03:
		return MuxDiff03
	case Diff13:
		return MuxDiff13
	case Diff23:
		return MuxDiff23
	default:
		return MuxDiff01
	}
}

// Encode assembles the config word for a single conversion on m. The
// comparator fields are left at their disabled defaults.
func Encode(c Config, m Mux) uint16 {
	w := uint16(CompQueNone) | uint16(CompLatNonLatching) | uint16(CompPolActiveLow) | uint16(CompModeTraditional)
	w |= uint16(c.OS) & osMask
	w |= uint16(m) & muxMask
	w |= uint16(c.Gain) & gainMask
	w |= uint16(c.Mode) & modeMask
	w |= uint16(c.Rate) & rateMask
	return w
}

// EncodeContinuous assembles the config word for continuous conversions on m
// with ALERT/RDY acting as a conversion ready output. That output only works
// with an active-high polarity and a comparator queue other than
// CompQueNone, so those two fields and the mode are forced. COMP_MODE and
// COMP_LAT have no effect in this mode but are passed through.
func EncodeContinuous(c Config, m Mux) uint16 {
	var w uint16
	w |= uint16(c.OS) & osMask
	w |= uint16(m) & muxMask
	w |= uint16(c.Gain) & gainMask
	w |= uint16(ModeContinuous)
	w |= uint16(c.Rate) & rateMask
	w |= uint16(c.CompMode) & compModeMask
	w |= uint16(CompPolActiveHigh)
	w |= uint16(c.CompLat) & compLatMask
	w |= uint16(CompQueOne)
	return w
}

// Decode splits a config word read back from the device. The thresholds of
// the returned Config are left at zero.
func Decode(w uint16) (Config, Mux) {
	c := Config{
		OS:       OSMode(w & osMask),
		Gain:     Gain(w & gainMask),
		Mode:     Mode(w & modeMask),
		Rate:     Rate(w & rateMask),
		CompMode: CompMode(w & compModeMask),
		CompPol:  CompPol(w & compPolMask),
		CompLat:  CompLat(w & compLatMask),
		CompQue:  CompQue(w & compQueMask),
	}
	return c, Mux(w & muxMask)
}

// Swap16 reverses the byte order of w. Registers are big-endian on the wire
// while SMBus word transfers send the low byte first.
func Swap16(w uint16) uint16 {
	return bits.ReverseBytes16(w)
}

// FullScale returns the positive full-scale input voltage.
func (g Gain) FullScale() physic.ElectricPotential {
	switch g {
	case GainTwoThirds:
		return 6144 * physic.MilliVolt
	case GainOne:
		return 4096 * physic.MilliVolt
	case GainTwo:
		return 2048 * physic.MilliVolt
	case GainFour:
		return 1024 * physic.MilliVolt
	case GainEight:
		return 512 * physic.MilliVolt
	case GainSixteen:
		return 256 * physic.MilliVolt
	default:
		return 0
	}
}

// Voltage converts a conversion result taken with gain g to a voltage.
func (g Gain) Voltage(count int16) physic.ElectricPotential {
	return physic.ElectricPotential(int64(count) * int64(g.FullScale()) / 32768)
}

func (g Gain) String() string {
	if fs := g.FullScale(); fs != 0 {
		return "+/-" + fs.String()
	}
	return fmt.Sprintf("Gain(%#04x)", uint16(g))
}

// Frequency returns the data rate.
func (r Rate) Frequency() physic.Frequency {
	switch r {
	case Rate8:
		return 8 * physic.Hertz
	case Rate16:
		return 16 * physic.Hertz
	case Rate32:
		return 32 * physic.Hertz
	case Rate64:
		return 64 * physic.Hertz
	case Rate128:
		return 128 * physic.Hertz
	case Rate250:
		return 250 * physic.Hertz
	case Rate475:
		return 475 * physic.Hertz
	case Rate860:
		return 860 * physic.Hertz
	default:
		return 0
	}
}

func (r Rate) String() string {
	if f := r.Frequency(); f != 0 {
		return fmt.Sprintf("%dSPS", int64(f/physic.Hertz))
	}
	return fmt.Sprintf("Rate(%#04x)", uint16(r))
}

func (m Mode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeSingle:
		return "single-shot"
	default:
		return fmt.Sprintf("Mode(%#04x)", uint16(m))
	}
}

func (m Mux) String() string {
	switch m {
	case MuxDiff01:
		return Diff01.String()
	case MuxDiff03:
		return Diff03.String()
	case MuxDiff13:
		return Diff13.String()
	case MuxDiff23:
		return Diff23.String()
	case MuxSingle0, MuxSingle1, MuxSingle2, MuxSingle3:
		return fmt.Sprintf("AIN%d-GND", int(m-MuxSingle0)>>12)
	default:
		return fmt.Sprintf("Mux(%#04x)", uint16(m))
	}
}

func (o OSMode) String() string {
	if o&OSMode(osMask) != 0 {
		return "single"
	}
	return "no-effect"
}

func (c CompMode) String() string {
	if c == CompModeWindow {
		return "window"
	}
	return "traditional"
}

func (c CompPol) String() string {
	if c == CompPolActiveHigh {
		return "active-high"
	}
	return "active-low"
}

func (c CompLat) String() string {
	if c == CompLatLatching {
		return "latching"
	}
	return "non-latching"
}

func (c CompQue) String() string {
	switch c {
	case CompQueOne:
		return "1"
	case CompQueTwo:
		return "2"
	case CompQueFour:
		return "4"
	default:
		return "none"
	}
}
