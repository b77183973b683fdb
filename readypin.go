package ads1115

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// ReadyPin delivers falling edges of the ALERT/RDY output.
//
// Watch configures the pin as a pulled-up input and calls fn on every
// falling edge until stop is called. fn runs outside the caller's goroutine
// and must not block.
type ReadyPin interface {
	Watch(fn func()) (stop func() error, err error)
}

// edgePoll bounds how long a WaitForEdge call may delay a stop request.
const edgePoll = 50 * time.Millisecond

// NewReadyPin returns a ReadyPin backed by a periph GPIO input.
func NewReadyPin(p gpio.PinIn) ReadyPin {
	return &periphPin{p: p}
}

type periphPin struct {
	p gpio.PinIn
}

func (r *periphPin) Watch(fn func()) (func() error, error) {
	// ALERT/RDY is open drain and still needs the pull-up in ready mode.
	if err := r.p.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, fmt.Errorf("%s: %w", r.p, err)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if r.p.WaitForEdge(edgePoll) {
				fn()
			}
		}
	}()

	var once sync.Once
	var err error
	return func() error {
		once.Do(func() {
			close(stop)
			wg.Wait()
			err = r.p.In(gpio.PullUp, gpio.NoEdge)
		})
		return err
	}, nil
}
