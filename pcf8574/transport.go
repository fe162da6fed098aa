// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"fmt"
	"reflect"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Transport moves bytes to and from a device on the bus. Dev always
// transfers exactly one byte per call.
type Transport interface {
	// Send writes w to the device at the 7-bit address addr.
	Send(addr uint16, w []byte) error
	// Receive fills r from the device at the 7-bit address addr.
	Receive(addr uint16, r []byte) error
}

// Initializer is implemented by transports that need to bring up the
// platform layer. Dev.Init calls it once.
type Initializer interface {
	Init() error
}

// DeInitializer is implemented by transports that need to tear down the
// platform layer. Dev.Halt calls it.
type DeInitializer interface {
	DeInit() error
}

// validator is implemented by transports that can be partially configured.
type validator interface {
	Validate() error
}

func validate(t Transport) error {
	if t == nil {
		return fmt.Errorf("%w: nil transport", ErrInvalidParameter)
	}
	// A nil pointer in a non-nil interface, e.g. (*myBus)(nil).
	switch rv := reflect.ValueOf(t); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("%w: nil %T transport", ErrInvalidParameter, t)
		}
	}
	if v, ok := t.(validator); ok {
		return v.Validate()
	}
	return nil
}

// Platform is a table of platform layer functions, turned into a Transport
// with Platform.Transport. Send and Receive are mandatory, Init and DeInit
// are optional.
//
// The functions may return a BusStatus as error to report why a transfer
// failed.
type Platform struct {
	Init    func() error
	DeInit  func() error
	Send    func(addr uint16, w []byte) error
	Receive func(addr uint16, r []byte) error
}

// Validate returns ErrInvalidParameter if a mandatory function is missing.
func (p *Platform) Validate() error {
	if p == nil || p.Send == nil || p.Receive == nil {
		return fmt.Errorf("%w: platform Send and Receive are required", ErrInvalidParameter)
	}
	return nil
}

// Transport returns p as a Transport. A missing Init or DeInit hook is a
// no-op.
func (p *Platform) Transport() Transport {
	return &platform{p}
}

type platform struct{ p *Platform }

func (t *platform) Validate() error {
	return t.p.Validate()
}

func (t *platform) Init() error {
	if t.p.Init == nil {
		return nil
	}
	return t.p.Init()
}

func (t *platform) DeInit() error {
	if t.p.DeInit == nil {
		return nil
	}
	return t.p.DeInit()
}

func (t *platform) Send(addr uint16, w []byte) error {
	return t.p.Send(addr, w)
}

func (t *platform) Receive(addr uint16, r []byte) error {
	return t.p.Receive(addr, r)
}

// MaxSpeed is the highest clock the chip supports.
const MaxSpeed = 100 * physic.KiloHertz

// I2C is a Transport over a periph.io I²C bus.
type I2C struct {
	Bus i2c.Bus
	// Speed, when not zero, is set on the bus by Init.
	Speed physic.Frequency
}

// NewI2C returns an I2C transport that clocks bus at MaxSpeed.
func NewI2C(bus i2c.Bus) *I2C {
	return &I2C{Bus: bus, Speed: MaxSpeed}
}

// Validate returns ErrInvalidParameter if no bus is set.
func (t *I2C) Validate() error {
	if t == nil || t.Bus == nil {
		return fmt.Errorf("%w: nil i2c bus", ErrInvalidParameter)
	}
	return nil
}

// Init sets the bus speed.
func (t *I2C) Init() error {
	if t.Speed == 0 {
		return nil
	}
	return t.Bus.SetSpeed(t.Speed)
}

// Send implements Transport.
func (t *I2C) Send(addr uint16, w []byte) error {
	return t.Bus.Tx(addr, w, nil)
}

// Receive implements Transport.
func (t *I2C) Receive(addr uint16, r []byte) error {
	return t.Bus.Tx(addr, nil, r)
}

func (t *I2C) String() string {
	return t.Bus.String()
}

var _ Transport = &I2C{}
var _ Initializer = &I2C{}
