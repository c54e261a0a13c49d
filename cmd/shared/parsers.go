package shared

import (
	"fmt"
	"strconv"
)

// Positional holds the positional arguments of the send command.
type Positional struct {
	Address string
	Port    int
	Data    string
}

// ParsePositional reads address, port and data from args. Every argument is
// optional. A port that is not a non-negative number becomes 0 and extra
// arguments are ignored; both produce warnings instead of errors.
func ParsePositional(args []string) (Positional, []error) {
	var p Positional
	var warnings []error

	if len(args) >= 1 {
		p.Address = args[0]
	}

	if len(args) >= 2 {
		port, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("could not parse port %q, using 0", args[1]))
		} else {
			p.Port = int(port)
		}
	}

	if len(args) >= 3 {
		p.Data = args[2]
	}

	if len(args) > 3 {
		warnings = append(warnings, fmt.Errorf("extra parameters detected, try surrounding your data with quotes"))
	}

	return p, warnings
}
