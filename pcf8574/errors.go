// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidParameter is returned when an argument is rejected. The bus
	// is never touched in that case.
	ErrInvalidParameter = errors.New("pcf8574: invalid parameter")
	// ErrTransport is returned when the transport reported a failure.
	ErrTransport = errors.New("pcf8574: transport failure")
	// ErrNotImplemented is returned by pin functions the chip doesn't have.
	ErrNotImplemented = errors.New("pcf8574: not implemented")
)

// Errors a platform layer reports, see BusStatus.
var (
	ErrBusFailure = errors.New("pcf8574: bus failure")
	ErrBusBusy    = errors.New("pcf8574: bus busy")
	ErrNoAck      = errors.New("pcf8574: no acknowledge")
)

// wrapTransport tags err as a transport failure while keeping the
// transport's own error reachable with errors.Is.
func wrapTransport(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
}

// Result is the outcome of an operation as a status code.
type Result int

const (
	OK Result = iota
	Fail
	InvalidParam
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case Fail:
		return "Fail"
	case InvalidParam:
		return "InvalidParam"
	default:
		return "Result(" + strconv.Itoa(int(r)) + ")"
	}
}

// ResultOf collapses an error returned by Dev into a Result. Errors that
// didn't come from Dev count as Fail.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ErrInvalidParameter):
		return InvalidParam
	default:
		return Fail
	}
}

// BusStatus is the status code of a platform layer transfer: 0 on success,
// negative on failure.
type BusStatus int8

const (
	BusOK      BusStatus = 0
	BusFailure BusStatus = -1
	BusBusy    BusStatus = -2
	BusNoAck   BusStatus = -3
)

// Err returns nil for a successful status, or an error matching one of
// ErrBusFailure, ErrBusBusy or ErrNoAck. Unknown negative codes match
// ErrBusFailure.
func (s BusStatus) Err() error {
	if s >= 0 {
		return nil
	}
	return s
}

func (s BusStatus) Error() string {
	return s.sentinel().Error() + " (" + strconv.Itoa(int(s)) + ")"
}

// Is lets errors.Is match a BusStatus against the sentinel errors.
func (s BusStatus) Is(target error) bool {
	return s < 0 && target == s.sentinel()
}

func (s BusStatus) sentinel() error {
	switch s {
	case BusBusy:
		return ErrBusBusy
	case BusNoAck:
		return ErrNoAck
	default:
		return ErrBusFailure
	}
}
