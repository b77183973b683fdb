//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/mikesmitty/ads1115"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var gains = map[string]ads1115.Gain{
	"6.144": ads1115.GainTwoThirds,
	"4.096": ads1115.GainOne,
	"2.048": ads1115.GainTwo,
	"1.024": ads1115.GainFour,
	"0.512": ads1115.GainEight,
	"0.256": ads1115.GainSixteen,
}

var rates = map[int64]ads1115.Rate{
	8:   ads1115.Rate8,
	16:  ads1115.Rate16,
	32:  ads1115.Rate32,
	64:  ads1115.Rate64,
	128: ads1115.Rate128,
	250: ads1115.Rate250,
	475: ads1115.Rate475,
	860: ads1115.Rate860,
}

// Reads an ADS1115 either with single-shot differential measurements, or
// continuously paced by the ALERT/RDY pin with the samples written to a text
// file. Settings come from flags, ADS1115_ environment variables or a JSON
// config file, in that order of priority.
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	cfg := loadConfig(os.Args[1:])

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	opts, err := options(cfg)
	if err != nil {
		log.Fatal(err)
	}
	bus, closer, err := openBus(cfg.MustGet("transport").String(), cfg.MustGet("bus").String(), opts.Addr)
	if err != nil {
		log.Fatalf("[ADS1115] Unable to open I2C interface: %v", err)
	}

	dev, err := ads1115.New(bus, opts)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, cfg.MustGet("duration").Duration())
	defer cancel()

	switch mode := cfg.MustGet("mode").String(); mode {
	case "single":
		err = single(ctx, dev)
	case "continuous":
		err = continuous(ctx, dev, cfg)
	default:
		err = fmt.Errorf("invalid mode %q", mode)
	}
	if err = multierr.Combine(err, dev.Halt(), closer.Close()); err != nil {
		log.Fatal(err)
	}
}

func single(ctx context.Context, dev *ads1115.Dev) error {
	dev.SetMode(ads1115.ModeSingle)
	dev.SetOSMode(ads1115.OSSingle)
	t := time.NewTicker(5 * time.Millisecond)
	defer t.Stop()
	for {
		v, err := dev.MeasureDifferential(ads1115.Diff01)
		if err != nil {
			return err
		}
		log.Printf("Differential: %d (%s)", v, dev.Gain().Voltage(v))
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func continuous(ctx context.Context, dev *ads1115.Dev, cfg *config.Config) error {
	sink, err := ads1115.CreateTextSink(cfg.MustGet("output").String())
	if err != nil {
		log.Fatalf("[ADS1115] Unable to open file: %v", err)
	}

	var pin ads1115.ReadyPin
	if chip := cfg.MustGet("chip").String(); chip != "" {
		pin = ads1115.NewCdevReadyPin(chip, int(cfg.MustGet("line").Int()))
	} else {
		p := gpioreg.ByName(cfg.MustGet("pin").String())
		if p == nil {
			log.Fatalf("[ADS1115] Unknown ready pin %q", cfg.MustGet("pin").String())
		}
		pin = ads1115.NewReadyPin(p)
	}

	log.Print("[ADS1115] Configuring registers and data ready interrupt...")
	if err := dev.StartContinuous(ads1115.MuxDiff01, pin, sink); err != nil {
		log.Fatal(err)
	}
	log.Print("[ADS1115] Data collection started...")

	err = dev.Run(ctx, 0)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Print("[ADS1115] Closing ADC output file...")
	err = multierr.Append(err, dev.StopContinuous())
	log.Print("[ADS1115] Data collection done.")
	return err
}

// options builds the driver options from cfg.
func options(cfg *config.Config) (*ads1115.Opts, error) {
	opts := ads1115.DefaultOptions()
	opts.Addr = uint16(cfg.MustGet("address").Int())
	opts.ConversionDelay = cfg.MustGet("delay").Duration()
	g, ok := gains[cfg.MustGet("gain").String()]
	if !ok {
		return nil, fmt.Errorf("invalid gain %q", cfg.MustGet("gain").String())
	}
	opts.Config.Gain = g
	r, ok := rates[cfg.MustGet("rate").Int64()]
	if !ok {
		return nil, fmt.Errorf("invalid rate %d", cfg.MustGet("rate").Int64())
	}
	opts.Config.Rate = r
	return opts, nil
}

func openBus(transport, name string, addr uint16) (ads1115.WordBus, io.Closer, error) {
	switch transport {
	case "i2c":
		b, err := i2creg.Open(name)
		if err != nil {
			return nil, nil, err
		}
		return ads1115.NewI2C(b, addr), b, nil
	case "smbus":
		n, err := strconv.Atoi(name)
		if err != nil {
			return nil, nil, fmt.Errorf("smbus needs a bus number: %w", err)
		}
		s, err := ads1115.OpenSMBus(n, uint8(addr))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("invalid transport %q", transport)
	}
}

func loadConfig(args []string) *config.Config {
	defaultConfig := map[string]interface{}{
		"transport": "i2c",
		"bus":       "1",
		"address":   int(ads1115.AddressGND),
		"delay":     ads1115.DefaultConversionDelay.String(),
		"gain":      "2.048",
		"rate":      128,
		"mode":      "continuous",
		"pin":       "GPIO27",
		"chip":      "",
		"line":      27,
		"output":    "./data/adc_samples.txt",
		"duration":  "10s",
	}
	def := dict.New(dict.WithMap(defaultConfig))
	flags := []pflag.Flag{
		{Short: 'c', Name: "config-file"},
	}
	// highest priority sources first - flags override environment
	cfg := config.New(
		pflag.New(pflag.WithCommandLine(args), pflag.WithFlags(flags)),
		env.New(env.WithEnvPrefix("ADS1115_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "ads1115.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}
