// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// Port shares a Dev between goroutines and exposes its lines as gpio.PinIO.
//
// All the accesses to the Dev through the Port are serialized. The Dev must
// not be used directly while the Port is in use.
type Port struct {
	// Pins are the 8 lines of the chip, registered in gpioreg as
	// <dev>_GPIO<n>.
	Pins []gpio.PinIO

	mu  sync.Mutex
	dev *Dev
	// registered holds the names this Port added to gpioreg.
	registered []string
}

// NewPort wraps dev and registers its pins.
//
// A pin whose name is already taken in gpioreg, e.g. by another Port on the
// same chip, is left out of the registry.
func NewPort(dev *Dev) (*Port, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: nil handle", ErrInvalidParameter)
	}
	p := &Port{dev: dev, Pins: make([]gpio.PinIO, NumPins)}
	name := dev.String()
	for i := 0; i < NumPins; i++ {
		p.Pins[i] = &pcfPin{port: p, number: i, name: fmt.Sprintf("%s_GPIO%d", name, i)}
		if err := gpioreg.Register(p.Pins[i]); err != nil {
			log.WithField("pin", p.Pins[i].Name()).Debugln("Not registered:", err)
			continue
		}
		p.registered = append(p.registered, p.Pins[i].Name())
	}
	return p, nil
}

// Dev returns the wrapped device.
func (p *Port) Dev() *Dev {
	return p.dev
}

// SetDir sets the direction mask, 1 for output and 0 for input.
func (p *Port) SetDir(mask byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dev.SetDir(mask)
}

// Out writes value to the output pins.
func (p *Port) Out(value byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev.Write(value)
}

// Read samples all 8 pins.
func (p *Port) Read() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev.Read()
}

// Halt halts the device.
func (p *Port) Halt() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev.Halt()
}

// Close removes the pins registered by NewPort from gpioreg.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for _, name := range p.registered {
		if err := gpioreg.Unregister(name); err != nil {
			errs = append(errs, err)
		}
	}
	p.registered = nil
	return errors.Join(errs...)
}

func (p *Port) String() string {
	return p.dev.String()
}

// in configures a line as input and releases it.
func (p *Port) in(number int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dev.SetDir(p.dev.Dir() &^ (1 << uint(number)))
	return p.dev.Write(p.dev.Latch())
}

// out configures a line as output and drives it.
func (p *Port) out(number int, high bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dev.SetDir(p.dev.Dir() | 1<<uint(number))
	return p.dev.WritePin(number, high)
}

func (p *Port) isOutput(number int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev.Dir()&(1<<uint(number)) != 0
}

type pcfPin struct {
	port   *Port
	number int
	name   string
}

func (pin *pcfPin) String() string {
	return pin.name
}

func (pin *pcfPin) Name() string {
	return pin.name
}

func (pin *pcfPin) Number() int {
	return pin.number
}

func (pin *pcfPin) Function() string {
	if pin.port.isOutput(pin.number) {
		return "Out"
	}
	return "In"
}

func (pin *pcfPin) Halt() error {
	return nil
}

// In makes the pin an input. The chip has a weak pull up and no edge
// detection per pin.
func (pin *pcfPin) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.Float, gpio.PullUp, gpio.PullNoChange:
	default:
		return fmt.Errorf("pcf8574: %s: pull %s not supported", pin.name, pull)
	}
	if edge != gpio.NoEdge {
		return fmt.Errorf("pcf8574: %s: edge detection %w", pin.name, ErrNotImplemented)
	}
	return pin.port.in(pin.number)
}

func (pin *pcfPin) Read() gpio.Level {
	v, err := pin.port.Read()
	if err != nil {
		log.WithField("pin", pin.name).Errorln("Failed to read:", err)
		return gpio.Low
	}
	return gpio.Level(v&(1<<uint(pin.number)) != 0)
}

// The INT line of the chip doesn't tell which pin changed.
func (pin *pcfPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (pin *pcfPin) Pull() gpio.Pull {
	return gpio.PullUp
}

func (pin *pcfPin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

func (pin *pcfPin) Out(l gpio.Level) error {
	return pin.port.out(pin.number, bool(l))
}

func (pin *pcfPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

var _ gpio.PinIO = &pcfPin{}
var _ conn.Resource = &Port{}
var _ conn.Resource = &Dev{}
