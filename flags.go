// Package dumbledraw holds helpers shared by the shape plotting commands.
package dumbledraw

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags collects float values from a repeatable flag. Each
// occurrence may carry a comma separated list. Values given on the command
// line replace the default rather than extend it.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, field := range strings.Split(valueStr, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return err
		}
		f.Array = append(f.Array, value)
	}
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// IsSet reports whether the flag appeared on the command line.
func (f *FloatArrayFlags) IsSet() bool { return f.beenSet }

// StringArrayFlags collects process names and the like from a repeatable
// flag, with the same replace-the-default semantics as FloatArrayFlags.
type StringArrayFlags struct {
	Array   []string
	beenSet bool
}

func (f *StringArrayFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, field := range strings.Split(valueStr, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		f.Array = append(f.Array, field)
	}
	return nil
}

func (f *StringArrayFlags) String() string {
	return strings.Join(f.Array, ",")
}
