// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/expanders/pcf8574"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

var (
	colorOutHigh = color.NRGBA{255, 200, 0, 255}
	colorOutLow  = color.NRGBA{80, 60, 0, 255}
	colorInHigh  = color.NRGBA{0, 220, 0, 255}
	colorInLow   = color.NRGBA{220, 0, 0, 255}
)

// lineColor returns the color of a line: yellow shades for outputs, green
// and red for inputs.
func lineColor(output, high bool) color.NRGBA {
	switch {
	case output && high:
		return colorOutHigh
	case output:
		return colorOutLow
	case high:
		return colorInHigh
	default:
		return colorInLow
	}
}

// renderer draws the 8 lines of the chip on a terminal, P7 on the left.
type renderer struct {
	w       io.Writer
	palette *ansi256.Palette
	buf     bytes.Buffer
}

func newRenderer() *renderer {
	return &renderer{w: colorable.NewColorableStdout(), palette: ansi256.Default}
}

// line returns the ANSI encoded row for value with direction dir.
func (r *renderer) line(dir, value byte) string {
	r.buf.Reset()
	_, _ = r.buf.WriteString("\r\033[0m")
	for i := pcf8574.NumPins - 1; i >= 0; i-- {
		bit := byte(1) << uint(i)
		_, _ = io.WriteString(&r.buf, r.palette.Block(lineColor(dir&bit != 0, value&bit != 0)))
	}
	_, _ = fmt.Fprintf(&r.buf, "\033[0m 0x%02x ", value)
	return r.buf.String()
}

func (r *renderer) draw(dir, value byte) error {
	_, err := io.WriteString(r.w, r.line(dir, value))
	return err
}

// done resets the terminal attributes and ends the row.
func (r *renderer) done() error {
	_, err := io.WriteString(r.w, "\n\033[0m")
	return err
}
