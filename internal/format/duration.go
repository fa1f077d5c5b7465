// Package format renders durations, progress, ETA estimates and long
// decimal products for terminal output.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a measured multiplication time: whole
// microseconds below a millisecond, whole milliseconds below a second, and
// the default representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d\u00b5s", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
