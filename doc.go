// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package expanders is a container for I/O expander drivers.
//
// See package pcf8574 for the PCF8574 and PCF8574A drivers, and cmd/pcf8574
// for a command line tool to poke at a chip.
package expanders
