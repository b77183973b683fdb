package ads1115

import (
	"testing"

	"periph.io/x/conn/v3/physic"
)

var allGains = []Gain{GainTwoThirds, GainOne, GainTwo, GainFour, GainEight, GainSixteen}

func TestEncodeGainIndependence(t *testing.T) {
	bases := []Config{
		DefaultConfig(),
		{OS: OSNoEffect, Mode: ModeContinuous, Rate: Rate860},
		{OS: OSSingle, Mode: ModeSingle, Rate: Rate8, CompMode: CompModeWindow, CompQue: CompQueTwo},
	}
	for _, base := range bases {
		for _, m := range []Mux{MuxDiff01, MuxDiff23, MuxSingle2} {
			ref := Encode(base, m)
			for _, g := range allGains {
				c := base
				c.Gain = g
				w := Encode(c, m)
				if got := Gain(w & gainMask); got != g {
					t.Errorf("%v/%v: gain bits %#04x, want %#04x", base, g, uint16(got), uint16(g))
				}
				if w&^gainMask != ref&^gainMask {
					t.Errorf("%v/%v: other fields changed: %#04x != %#04x", base, g, w&^gainMask, ref&^gainMask)
				}
			}
		}
	}
}

func TestEncodeMasksFields(t *testing.T) {
	c := Config{OS: OSSingle, Gain: Gain(0xFFFF), Mode: ModeSingle, Rate: Rate(0xFFFF)}
	w := Encode(c, MuxSingle0)
	if w&muxMask != uint16(MuxSingle0) {
		t.Fatalf("mux bits %#04x overwritten by gain or rate", w&muxMask)
	}
	if w&compQueMask != uint16(CompQueNone) {
		t.Fatalf("comparator queue bits %#04x", w&compQueMask)
	}
}

func TestEncodeComparatorDefaults(t *testing.T) {
	c := DefaultConfig()
	c.CompMode = CompModeWindow
	c.CompPol = CompPolActiveHigh
	c.CompLat = CompLatLatching
	c.CompQue = CompQueOne
	w := Encode(c, MuxDiff01)
	if got := w & (compModeMask | compPolMask | compLatMask | compQueMask); got != uint16(CompQueNone) {
		t.Fatalf("comparator bits %#04x, want %#04x", got, uint16(CompQueNone))
	}
}

func TestEncodeOSNoEffect(t *testing.T) {
	c := DefaultConfig()
	c.OS = OSNoEffect
	if w := Encode(c, MuxSingle3); w&osMask != 0 {
		t.Fatalf("OS bit set in %#04x", w)
	}
}

func TestSwap16(t *testing.T) {
	if got := Swap16(0x1234); got != 0x3412 {
		t.Fatalf("Swap16(0x1234) = %#04x", got)
	}
	for i := 0; i <= 0xFFFF; i++ {
		w := uint16(i)
		if got := Swap16(Swap16(w)); got != w {
			t.Fatalf("Swap16(Swap16(%#04x)) = %#04x", w, got)
		}
	}
}

func TestSingleEnded(t *testing.T) {
	data := []struct {
		ch   int
		want Mux
		ok   bool
	}{
		{0, MuxSingle0, true},
		{1, MuxSingle1, true},
		{2, MuxSingle2, true},
		{3, MuxSingle3, true},
		{4, 0, false},
		{255, 0, false},
		{-1, 0, false},
	}
	for _, line := range data {
		m, ok := SingleEnded(line.ch)
		if m != line.want || ok != line.ok {
			t.Errorf("SingleEnded(%d) = %v, %t; want %v, %t", line.ch, m, ok, line.want, line.ok)
		}
	}
}

func TestDifferential(t *testing.T) {
	data := []struct {
		p    DiffPair
		want Mux
	}{
		{Diff01, MuxDiff01},
		{Diff03, MuxDiff03},
		{Diff13, MuxDiff13},
		{Diff23, MuxDiff23},
		{DiffPair{1, 0}, MuxDiff01},
		{DiffPair{0, 2}, MuxDiff01},
		{DiffPair{3, 3}, MuxDiff01},
		{DiffPair{}, MuxDiff01},
	}
	for _, line := range data {
		if got := Differential(line.p); got != line.want {
			t.Errorf("Differential(%v) = %v; want %v", line.p, got, line.want)
		}
		if got := Encode(DefaultConfig(), Differential(line.p)) & muxMask; got != uint16(line.want) {
			t.Errorf("%v: mux bits %#04x", line.p, got)
		}
	}
}

func TestEncodeContinuous(t *testing.T) {
	c := DefaultConfig()
	if got := EncodeContinuous(c, MuxDiff01); got != 0x8488 {
		t.Fatalf("EncodeContinuous(default) = %#04x, want 0x8488", got)
	}

	for _, pol := range []CompPol{CompPolActiveLow, CompPolActiveHigh} {
		for _, que := range []CompQue{CompQueOne, CompQueTwo, CompQueFour, CompQueNone} {
			c := DefaultConfig()
			c.Mode = ModeSingle
			c.CompPol = pol
			c.CompQue = que
			c.CompMode = CompModeWindow
			c.CompLat = CompLatLatching
			w := EncodeContinuous(c, MuxSingle1)
			if w&compPolMask != uint16(CompPolActiveHigh) {
				t.Errorf("%v/%v: polarity not forced: %#04x", pol, que, w)
			}
			if w&compQueMask != uint16(CompQueOne) {
				t.Errorf("%v/%v: queue not forced: %#04x", pol, que, w)
			}
			if w&modeMask != uint16(ModeContinuous) {
				t.Errorf("%v/%v: mode not forced: %#04x", pol, que, w)
			}
			if w&(compModeMask|compLatMask) != uint16(CompModeWindow)|uint16(CompLatLatching) {
				t.Errorf("%v/%v: comparator mode and latch dropped: %#04x", pol, que, w)
			}
			if w&muxMask != uint16(MuxSingle1) {
				t.Errorf("%v/%v: mux %#04x", pol, que, w&muxMask)
			}
		}
	}
}

func TestDecode(t *testing.T) {
	c := Config{OS: OSSingle, Gain: GainEight, Mode: ModeContinuous, Rate: Rate475, CompQue: CompQueNone}
	got, m := Decode(Encode(c, MuxSingle2))
	if got != c {
		t.Fatalf("Decode = %+v, want %+v", got, c)
	}
	if m != MuxSingle2 {
		t.Fatalf("mux = %v", m)
	}

	got, m = Decode(0x849C)
	want := Config{OS: OSNotBusy, Gain: GainTwo, Mode: ModeContinuous, Rate: Rate128, CompMode: CompModeWindow, CompPol: CompPolActiveHigh, CompLat: CompLatLatching, CompQue: CompQueOne}
	if got != want || m != MuxDiff01 {
		t.Fatalf("Decode(0x849C) = %+v, %v", got, m)
	}
}

func TestGainVoltage(t *testing.T) {
	data := []struct {
		g     Gain
		count int16
		want  physic.ElectricPotential
	}{
		{GainTwo, 16, physic.MilliVolt},
		{GainTwo, 0, 0},
		{GainOne, 8, physic.MilliVolt},
		{GainTwoThirds, -32768, -6144 * physic.MilliVolt},
		{GainSixteen, 32767, 255992187 * physic.NanoVolt},
		{GainSixteen, 1, 7812 * physic.NanoVolt},
		{Gain(0x0E00), 100, 0},
	}
	for _, line := range data {
		if got := line.g.Voltage(line.count); got != line.want {
			t.Errorf("%v.Voltage(%d) = %s; want %s", line.g, line.count, got, line.want)
		}
	}
}

func TestStrings(t *testing.T) {
	data := []struct {
		got, want string
	}{
		{GainTwo.String(), "+/-2.048V"},
		{Rate860.String(), "860SPS"},
		{ModeSingle.String(), "single-shot"},
		{MuxSingle3.String(), "AIN3-GND"},
		{MuxDiff13.String(), "AIN1-AIN3"},
		{CompQueNone.String(), "none"},
		{Armed.String(), "armed"},
	}
	for _, line := range data {
		if line.got != line.want {
			t.Errorf("%q != %q", line.got, line.want)
		}
	}
}
