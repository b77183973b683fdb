package ads1115

import "time"

// I²C addresses selected by the ADDR pin strapping.
const (
	AddressGND uint16 = 0x48
	AddressVDD uint16 = 0x49
	AddressSDA uint16 = 0x4A
	AddressSCL uint16 = 0x4B
)

// DefaultConversionDelay is the fixed settle delay applied after every
// register write.
const DefaultConversionDelay = 100 * time.Microsecond

// Register pointers
const (
	conversionReg uint8 = iota
	configReg
	lowThreshReg
	highThreshReg
)

// Config register field masks
const (
	osMask       uint16 = 0x8000
	muxMask      uint16 = 0x7000
	gainMask     uint16 = 0x0E00
	modeMask     uint16 = 0x0100
	rateMask     uint16 = 0x00E0
	compModeMask uint16 = 0x0010
	compPolMask  uint16 = 0x0008
	compLatMask  uint16 = 0x0004
	compQueMask  uint16 = 0x0003
)

// Threshold values that turn ALERT/RDY into a conversion ready output: the
// MSB of Hi_thresh must be 1 and the MSB of Lo_thresh must be 0.
const (
	readyLowThreshold  int16 = 0x0000
	readyHighThreshold int16 = -1
)

// Power-on threshold register contents.
const (
	defaultLowThreshold  int16 = -0x8000
	defaultHighThreshold int16 = 0x7FFF
)

// OSMode is the operational status bit. Writing OSSingle starts a single
// conversion; when read back the same bit reports OSNotBusy.
type OSMode uint16

const (
	OSNoEffect OSMode = 0x0000
	OSSingle   OSMode = 0x8000
	OSBusy     OSMode = 0x0000
	OSNotBusy  OSMode = 0x8000
)

// Mux selects the input multiplexer configuration.
type Mux uint16

const (
	MuxDiff01  Mux = 0x0000 // AIN0 = P, AIN1 = N (default)
	MuxDiff03  Mux = 0x1000 // AIN0 = P, AIN3 = N
	MuxDiff13  Mux = 0x2000 // AIN1 = P, AIN3 = N
	MuxDiff23  Mux = 0x3000 // AIN2 = P, AIN3 = N
	MuxSingle0 Mux = 0x4000 // AIN0 = P, N = GND
	MuxSingle1 Mux = 0x5000
	MuxSingle2 Mux = 0x6000
	MuxSingle3 Mux = 0x7000
)

// Gain is the programmable gain amplifier setting, which fixes the full-scale
// range.
type Gain uint16

const (
	GainTwoThirds Gain = 0x0000 // +/-6.144V, 1 bit = 0.1875mV
	GainOne       Gain = 0x0200 // +/-4.096V, 1 bit = 0.125mV
	GainTwo       Gain = 0x0400 // +/-2.048V, 1 bit = 0.0625mV (default)
	GainFour      Gain = 0x0600 // +/-1.024V, 1 bit = 0.03125mV
	GainEight     Gain = 0x0800 // +/-0.512V, 1 bit = 0.015625mV
	GainSixteen   Gain = 0x0A00 // +/-0.256V, 1 bit = 0.0078125mV
)

// Mode is the device operating mode.
type Mode uint16

const (
	ModeContinuous Mode = 0x0000
	ModeSingle     Mode = 0x0100 // Power-down single-shot (default)
)

// Rate is the data rate in samples per second.
type Rate uint16

const (
	Rate8   Rate = 0x0000
	Rate16  Rate = 0x0020
	Rate32  Rate = 0x0040
	Rate64  Rate = 0x0060
	Rate128 Rate = 0x0080 // default
	Rate250 Rate = 0x00A0
	Rate475 Rate = 0x00C0
	Rate860 Rate = 0x00E0
)

type CompMode uint16

const (
	CompModeTraditional CompMode = 0x0000 // with hysteresis (default)
	CompModeWindow      CompMode = 0x0010
)

// CompPol is the ALERT/RDY pin polarity.
type CompPol uint16

const (
	CompPolActiveLow  CompPol = 0x0000 // default
	CompPolActiveHigh CompPol = 0x0008
)

type CompLat uint16

const (
	CompLatNonLatching CompLat = 0x0000 // default
	CompLatLatching    CompLat = 0x0004
)

// CompQue is the number of conversions before ALERT/RDY asserts, or
// CompQueNone to disable the comparator and hold the pin high.
type CompQue uint16

const (
	CompQueOne  CompQue = 0x0000
	CompQueTwo  CompQue = 0x0001
	CompQueFour CompQue = 0x0002
	CompQueNone CompQue = 0x0003 // default
)
