// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf8574 provides a driver for the NXP/TI PCF8574 and PCF8574A 8-bit
// I²C I/O expanders.
//
// The two variants are functionally identical and only differ by the base
// address of the bus: 0x20 for the PCF8574 and 0x38 for the PCF8574A. Three
// address pins (A0..A2) select one of 8 consecutive addresses above the base.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// # Notes
//
// The chip has no registers. A one byte write sets the 8 pins, a one byte
// read returns the level of the 8 pins. The pins are quasi-bidirectional:
// writing a 0 turns on an open drain to ground, writing a 1 releases the pin
// to a weak current source. A pin can only be read as an input after a 1 has
// been written to it, so Dev keeps a direction mask and forces all the input
// pins high before each read.
//
// Dev does no locking. Use Port when the device is shared between goroutines.
package pcf8574

import (
	"fmt"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574  Variant = "PCF8574"
	PCF8574A Variant = "PCF8574A"
)

// NumPins is the number of I/O lines on the chip.
const NumPins = 8

// maxAddressPins is the highest value the A2..A0 pins can encode.
const maxAddressPins = 0x07

var bases = map[Variant]uint16{
	PCF8574:  0x20,
	PCF8574A: 0x38,
}

// base returns the base bus address of the variant.
func (v Variant) base() (uint16, bool) {
	b, ok := bases[v]
	return b, ok
}

// Dev is a handle to one PCF8574 chip.
//
// The zero value has no transport and is not usable; create one with New.
// Init may be called again later, e.g. after Halt.
type Dev struct {
	t       Transport
	variant Variant
	addr    uint16
	dir     byte
	latch   byte
}

// New returns a Dev using the transport t, initialized with Init.
//
// addressPins is the state of the A2..A0 pins, from 0 to 7.
func New(t Transport, variant Variant, addressPins uint8) (*Dev, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transport", ErrInvalidParameter)
	}
	d := &Dev{t: t}
	if err := d.Init(variant, addressPins); err != nil {
		return nil, err
	}
	return d, nil
}

// Init configures the handle for the variant and address pins, runs the
// transport's optional Init hook and releases all the pins.
//
// After a successful Init, all the pins are inputs and 0xFF has been written
// once to the chip. All the arguments are checked before the bus is touched.
func (d *Dev) Init(variant Variant, addressPins uint8) error {
	if d == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidParameter)
	}
	base, ok := variant.base()
	if !ok {
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidParameter, variant)
	}
	if addressPins > maxAddressPins {
		return fmt.Errorf("%w: address pins 0x%x out of range", ErrInvalidParameter, addressPins)
	}
	if err := validate(d.t); err != nil {
		return err
	}

	d.variant = variant
	d.addr = base | uint16(addressPins)
	if i, ok := d.t.(Initializer); ok {
		if err := i.Init(); err != nil {
			return wrapTransport("init", err)
		}
	}
	d.dir = 0x00
	d.latch = ^d.dir
	return d.send(d.latch)
}

// Halt runs the transport's optional DeInit hook.
//
// The handle keeps its address, direction and latch; call Init to use the
// chip again after the platform layer is brought back up.
func (d *Dev) Halt() error {
	if d == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidParameter)
	}
	if di, ok := d.t.(DeInitializer); ok {
		if err := di.DeInit(); err != nil {
			return wrapTransport("deinit", err)
		}
	}
	return nil
}

// DeInit is an alias of Halt.
func (d *Dev) DeInit() error {
	return d.Halt()
}

// SetAddress recomputes the bus address from the variant and the state of
// the A2..A0 pins. It doesn't talk to the chip.
//
// On error the address is left unchanged.
func (d *Dev) SetAddress(addressPins uint8) error {
	if d == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidParameter)
	}
	if addressPins > maxAddressPins {
		return fmt.Errorf("%w: address pins 0x%x out of range", ErrInvalidParameter, addressPins)
	}
	base, ok := d.variant.base()
	if !ok {
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidParameter, d.variant)
	}
	d.addr = base | uint16(addressPins)
	return nil
}

// SetDir sets the direction of the pins, 1 for output and 0 for input.
//
// Every bit pattern is valid. Nothing is written to the chip until the next
// Write, WritePin or Read.
func (d *Dev) SetDir(mask byte) {
	if d != nil {
		d.dir = mask
	}
}

// Write drives the output pins to data. Input pins are written high.
func (d *Dev) Write(data byte) error {
	if d == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidParameter)
	}
	d.latch = data | ^d.dir
	return d.send(d.latch)
}

// WritePin sets pin high or low and writes the latch.
//
// Only the pin's bit of the latch changes. The input pins are not forced high
// again; they keep the state set by the last Init, Write or Read.
func (d *Dev) WritePin(pin int, high bool) error {
	if d == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidParameter)
	}
	if pin < 0 || pin >= NumPins {
		return fmt.Errorf("%w: pin %d out of range", ErrInvalidParameter, pin)
	}
	if high {
		d.latch |= 1 << uint(pin)
	} else {
		d.latch &^= 1 << uint(pin)
	}
	return d.send(d.latch)
}

// Read returns the level of the 8 pins.
//
// The input pins are written high first, as the chip requires, then the pins
// are sampled. If the write fails, the chip is not read.
func (d *Dev) Read() (byte, error) {
	if d == nil {
		return 0, fmt.Errorf("%w: nil handle", ErrInvalidParameter)
	}
	d.latch |= ^d.dir
	if err := d.send(d.latch); err != nil {
		return 0, err
	}
	if d.t == nil {
		return 0, fmt.Errorf("%w: nil transport", ErrInvalidParameter)
	}
	var r [1]byte
	if err := d.t.Receive(d.addr, r[:]); err != nil {
		return 0, wrapTransport("receive", err)
	}
	return r[0], nil
}

// Variant returns the chip model set by Init.
func (d *Dev) Variant() Variant {
	return d.variant
}

// Addr returns the 7-bit bus address.
func (d *Dev) Addr() uint16 {
	return d.addr
}

// Dir returns the direction mask.
func (d *Dev) Dir() byte {
	return d.dir
}

// Latch returns the last byte written, or being written, to the chip.
//
// After a failed write the latch may not match the chip.
func (d *Dev) Latch() byte {
	return d.latch
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s_%x", d.variant, d.addr)
}

// send writes one byte to the chip.
func (d *Dev) send(b byte) error {
	if d.t == nil {
		return fmt.Errorf("%w: nil transport", ErrInvalidParameter)
	}
	w := [1]byte{b}
	if err := d.t.Send(d.addr, w[:]); err != nil {
		return wrapTransport("send", err)
	}
	return nil
}
