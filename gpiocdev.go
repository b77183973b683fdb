//go:build linux

package ads1115

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// NewCdevReadyPin returns a ReadyPin on line offset of the GPIO character
// device chip, e.g. "gpiochip0".
func NewCdevReadyPin(chip string, offset int) ReadyPin {
	return &cdevPin{chip: chip, offset: offset}
}

type cdevPin struct {
	chip   string
	offset int
}

func (c *cdevPin) Watch(fn func()) (func() error, error) {
	l, err := gpiocdev.RequestLine(c.chip, c.offset,
		gpiocdev.WithConsumer("ads1115"),
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { fn() }))
	if err != nil {
		return nil, fmt.Errorf("%s:%d: %w", c.chip, c.offset, err)
	}
	return l.Close, nil
}
