//go:build linux && gpiosim

package ads1115

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/warthog618/go-gpiosim"
)

// Needs the gpio-sim kernel module and permission to use configfs:
//
//	go test -tags gpiosim -run Cdev
func TestCdevReadyPin(t *testing.T) {
	s, err := gpiosim.NewSimpleton(4)
	if err != nil {
		t.Skipf("gpio-sim unavailable: %v", err)
	}
	defer s.Close()

	const offset = 2
	if err := s.Pullup(offset); err != nil {
		t.Fatal(err)
	}
	var n atomic.Int32
	stop, err := NewCdevReadyPin(s.DevPath(), offset).Watch(func() { n.Add(1) })
	if err != nil {
		t.Fatal(err)
	}

	waitEdges := func(want int32) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for n.Load() != want {
			if time.Now().After(deadline) {
				t.Fatalf("%d edges, want %d", n.Load(), want)
			}
			time.Sleep(time.Millisecond)
		}
	}
	for i := int32(1); i <= 3; i++ {
		if err := s.Pulldown(offset); err != nil {
			t.Fatal(err)
		}
		waitEdges(i)
		// Rising edges are not reported.
		if err := s.Pullup(offset); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(10 * time.Millisecond)
	if n.Load() != 3 {
		t.Fatalf("%d edges", n.Load())
	}

	if err := stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pulldown(offset); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if n.Load() != 3 {
		t.Fatalf("edge delivered after stop")
	}
}

func TestCdevReadyPinBadLine(t *testing.T) {
	s, err := gpiosim.NewSimpleton(4)
	if err != nil {
		t.Skipf("gpio-sim unavailable: %v", err)
	}
	defer s.Close()

	if _, err := NewCdevReadyPin(s.DevPath(), 9).Watch(func() {}); err == nil {
		t.Fatal("expected error for a line past the end of the chip")
	}
}
