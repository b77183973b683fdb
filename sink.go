package ads1115

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"periph.io/x/conn/v3/physic"
)

// Sample is one conversion result published during continuous acquisition.
type Sample struct {
	Time    time.Time
	Value   int16
	Voltage physic.ElectricPotential
}

// Sink records samples. It is handed to StartContinuous and closed by
// StopContinuous.
type Sink interface {
	Record(s Sample) error
	Close() error
}

// TextSink writes one "<unix microseconds> <count>" line per sample.
type TextSink struct {
	w *bufio.Writer
	c io.Closer
}

// CreateTextSink truncates or creates the file at path.
func CreateTextSink(path string) (*TextSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	return NewTextSink(f), nil
}

// NewTextSink returns a TextSink writing to w. w is closed with the sink
// when it implements io.Closer.
func NewTextSink(w io.Writer) *TextSink {
	s := &TextSink{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s
}

func (s *TextSink) Record(smp Sample) error {
	_, err := fmt.Fprintf(s.w, "%d %d\n", smp.Time.UnixMicro(), smp.Value)
	return err
}

func (s *TextSink) Close() error {
	err := s.w.Flush()
	if s.c != nil {
		err = multierr.Append(err, s.c.Close())
	}
	return err
}
