package schema

import "fmt"

// FormatRelTime formats a relative-seconds value as MM:SS, keeping the sign
// for pre-roll samples before t=0.
func FormatRelTime(seconds float64) string {
	neg := seconds < 0
	if neg {
		seconds = -seconds
	}
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	if neg {
		return fmt.Sprintf("-%02d:%02d", mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
