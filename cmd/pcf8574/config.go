// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/GermanBionicSystems/expanders/pcf8574"
	"gopkg.in/yaml.v3"
)

// config describes which chip to talk to. It can be loaded from a YAML file
// with -config; flags given on the command line win over the file.
type config struct {
	Bus      string        `yaml:"bus"`
	Variant  string        `yaml:"variant"`
	Address  uint8         `yaml:"address"`
	Dir      uint8         `yaml:"dir"`
	Interval time.Duration `yaml:"interval"`
}

func defaultConfig() config {
	return config{
		Variant:  string(pcf8574.PCF8574),
		Interval: 200 * time.Millisecond,
	}
}

func (c *config) validate() error {
	switch pcf8574.Variant(c.Variant) {
	case pcf8574.PCF8574, pcf8574.PCF8574A:
	default:
		return fmt.Errorf("unknown variant %q, expected %s or %s", c.Variant, pcf8574.PCF8574, pcf8574.PCF8574A)
	}
	if c.Address > 7 {
		return fmt.Errorf("address pins must be 0..7, got %d", c.Address)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	return nil
}

// loadConfig decodes the YAML file at path over c.
func loadConfig(path string, c *config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// byteValue is a flag.Value accepting 0x, 0b and decimal notations.
type byteValue uint8

func (b *byteValue) String() string {
	return fmt.Sprintf("0x%02x", uint8(*b))
}

func (b *byteValue) Set(s string) error {
	v, err := parseByte(s)
	if err != nil {
		return err
	}
	*b = byteValue(v)
	return nil
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return uint8(v), nil
}

// flags binds the command line flags to a config.
type flags struct {
	path     string
	bus      string
	variant  string
	address  uint
	dir      byteValue
	interval time.Duration
}

func (f *flags) register(fs *flag.FlagSet) {
	def := defaultConfig()
	fs.StringVar(&f.path, "config", "", "YAML file describing the chip")
	fs.StringVar(&f.bus, "bus", def.Bus, "I²C bus name, empty for the first one")
	fs.StringVar(&f.variant, "variant", def.Variant, "Chip model, PCF8574 or PCF8574A")
	fs.UintVar(&f.address, "a", uint(def.Address), "State of the A2..A0 address pins (0..7)")
	fs.Var(&f.dir, "dir", "Direction mask, 1 for output (e.g. 0x0f)")
	fs.DurationVar(&f.interval, "interval", def.Interval, "Poll interval (watch command)")
}

// resolve builds the config from the defaults, the file and the flags set on
// the command line, in that order.
func (f *flags) resolve(fs *flag.FlagSet) (config, error) {
	c := defaultConfig()
	if f.path != "" {
		if err := loadConfig(f.path, &c); err != nil {
			return c, err
		}
	}
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "bus":
			c.Bus = f.bus
		case "variant":
			c.Variant = f.variant
		case "a":
			if f.address > 7 {
				err = fmt.Errorf("-a must be 0..7, got %d", f.address)
			}
			c.Address = uint8(f.address)
		case "dir":
			c.Dir = uint8(f.dir)
		case "interval":
			c.Interval = f.interval
		}
	})
	if err != nil {
		return c, err
	}
	return c, c.validate()
}
