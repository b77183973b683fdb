package ads1115

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// WordBus transfers 16-bit register words using SMBus word semantics: the
// first byte on the wire is the low byte of the word. Dev swaps every word
// crossing this interface since the device registers are big-endian.
type WordBus interface {
	ReadWord(reg uint8) (uint16, error)
	WriteWord(reg uint8, w uint16) error
}

// NewI2C returns a WordBus talking to the device at addr on b.
func NewI2C(b i2c.Bus, addr uint16) WordBus {
	return &i2cBus{d: i2c.Dev{Bus: b, Addr: addr}}
}

type i2cBus struct {
	d i2c.Dev
}

func (b *i2cBus) String() string {
	return b.d.String()
}

func (b *i2cBus) ReadWord(reg uint8) (uint16, error) {
	var r [2]byte
	if err := b.d.Tx([]byte{reg}, r[:]); err != nil {
		return 0, fmt.Errorf("i2c bus: %w", err)
	}
	return binary.LittleEndian.Uint16(r[:]), nil
}

func (b *i2cBus) WriteWord(reg uint8, w uint16) error {
	var buf [3]byte
	buf[0] = reg
	binary.LittleEndian.PutUint16(buf[1:], w)
	if err := b.d.Tx(buf[:], nil); err != nil {
		return fmt.Errorf("i2c bus: %w", err)
	}
	return nil
}
