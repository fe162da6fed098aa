// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// pcf8574 reads and writes the pins of a PCF8574 or PCF8574A I/O expander.
//
// Usage:
//
//	pcf8574 [flags] read
//	pcf8574 [flags] write <byte>
//	pcf8574 [flags] set <pin> <0|1>
//	pcf8574 [flags] watch
//
// Every run initializes the chip first, which writes 0xFF and releases all 8
// pins. Outputs are thus briefly high before write or set drive them, and set
// does not keep the levels other pins had at the end of a previous run: use
// write with the full byte to set several outputs at once.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"time"

	"github.com/GermanBionicSystems/expanders/pcf8574"
	"github.com/antongulenko/golib"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// app holds what the commands need.
type app struct {
	cfg    config
	dev    *pcf8574.Dev
	out    io.Writer
	render func(dir, value byte) error
}

type commandFunc func(ctx context.Context, a *app, args []string) error

var commands = map[string]commandFunc{
	"read":  cmdRead,
	"write": cmdWrite,
	"set":   cmdSet,
	"watch": cmdWatch,
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cmdRead(ctx context.Context, a *app, args []string) error {
	if len(args) != 0 {
		return errors.New("read takes no argument")
	}
	v, err := a.dev.Read()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "0x%02x %08b\n", v, v)
	return err
}

func cmdWrite(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("write takes one byte argument")
	}
	v, err := parseByte(args[0])
	if err != nil {
		return err
	}
	log.Debugf("Writing 0x%02x with direction 0x%02x", v, a.dev.Dir())
	return a.dev.Write(v)
}

func cmdSet(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return errors.New("set takes a pin and a level")
	}
	pin, err := strconv.Atoi(args[0])
	if err != nil || pin < 0 || pin >= pcf8574.NumPins {
		return fmt.Errorf("invalid pin %q, expected 0..%d", args[0], pcf8574.NumPins-1)
	}
	var high bool
	switch args[1] {
	case "0", "low":
	case "1", "high":
		high = true
	default:
		return fmt.Errorf("invalid level %q, expected 0 or 1", args[1])
	}
	a.dev.SetDir(a.dev.Dir() | 1<<uint(pin))
	log.Debugf("Setting pin %d to %t", pin, high)
	return a.dev.WritePin(pin, high)
}

func cmdWatch(ctx context.Context, a *app, args []string) error {
	if len(args) != 0 {
		return errors.New("watch takes no argument")
	}
	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()
	for {
		v, err := a.dev.Read()
		if err != nil {
			return err
		}
		if err := a.render(a.dev.Dir(), v); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// run executes the command named by args[0] on dev.
func run(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command, one of %v", commandNames())
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, one of %v", args[0], commandNames())
	}
	return cmd(ctx, a, args[1:])
}

func mainImpl(f *flags) error {
	cfg, err := f.resolve(flag.CommandLine)
	if err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return fmt.Errorf("failed to open I²C: %w", err)
	}
	defer bus.Close()

	dev, err := pcf8574.New(pcf8574.NewI2C(bus), pcf8574.Variant(cfg.Variant), cfg.Address)
	if err != nil {
		return err
	}
	dev.SetDir(cfg.Dir)
	log.Debugf("Using %s on %s, direction 0x%02x", dev, bus, cfg.Dir)

	r := newRenderer()
	a := &app{cfg: cfg, dev: dev, out: os.Stdout, render: r.draw}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = run(ctx, a, flag.Args())
	if len(flag.Args()) != 0 && flag.Arg(0) == "watch" {
		_ = r.done()
	}
	return err
}

func main() {
	var f flags
	f.register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <%v> [args]\n", os.Args[0], commandNames())
		flag.PrintDefaults()
	}
	golib.RegisterLogFlags()
	flag.Parse()
	golib.ConfigureLogging()
	golib.Checkerr(mainImpl(&f))
}
