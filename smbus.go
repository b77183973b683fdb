//go:build linux

package ads1115

import (
	"fmt"

	"github.com/go-daq/smbus"
)

// SMBus is a WordBus backed by the kernel SMBus word transfers of
// /dev/i2c-<bus>.
type SMBus struct {
	c    *smbus.Conn
	addr uint8
	name string
}

// OpenSMBus opens /dev/i2c-<bus> for the device at addr.
func OpenSMBus(bus int, addr uint8) (*SMBus, error) {
	c, err := smbus.Open(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("smbus: open /dev/i2c-%d@%#x: %w", bus, addr, err)
	}
	return &SMBus{c: c, addr: addr, name: fmt.Sprintf("/dev/i2c-%d", bus)}, nil
}

func (s *SMBus) String() string {
	return fmt.Sprintf("%s(%#x)", s.name, s.addr)
}

func (s *SMBus) ReadWord(reg uint8) (uint16, error) {
	w, err := s.c.ReadWord(s.addr, reg)
	if err != nil {
		return 0, fmt.Errorf("smbus: %w", err)
	}
	return w, nil
}

func (s *SMBus) WriteWord(reg uint8, w uint16) error {
	if err := s.c.WriteWord(s.addr, reg, w); err != nil {
		return fmt.Errorf("smbus: %w", err)
	}
	return nil
}

// Close releases the bus file descriptor.
func (s *SMBus) Close() error {
	return s.c.Close()
}
