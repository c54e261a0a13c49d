// Package config holds everything one pktsend invocation is configured
// with: the values given on the command line, the settings file and the
// injectable dependencies used to reach the network.
package config

import (
	"fmt"
	"time"
)

// Send is one invocation as given on the command line, before any flag
// conflicts are resolved or saved packets are merged in.
type Send struct {
	Address string
	Port    int
	Data    string

	Hex        bool
	MixedASCII bool
	PureASCII  bool

	TCP bool
	UDP bool

	Wait     time.Duration
	BindPort int
	BindSet  bool // --bind was given, even if 0

	Name string

	Quiet   bool
	Verbose bool

	// Warnings found while parsing the command line, reported together
	// with the ones found during dispatch.
	Warnings []error

	Deps *Dependencies
}

// Validate rejects values no transport could use.
func (c *Send) Validate() []error {
	var errors []error

	if err := ValidatePort(c.Port); err != nil {
		errors = append(errors, fmt.Errorf("'port': %s", err))
	}

	if err := ValidatePort(c.BindPort); err != nil {
		errors = append(errors, fmt.Errorf("'--bind': %s", err))
	}

	if c.Wait < 0 {
		errors = append(errors, fmt.Errorf("'--wait' must not be negative"))
	}

	return errors
}
