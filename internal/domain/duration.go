package domain

import "fmt"

// FormatDuration renders seconds as MM:SS.
// Minutes are not wrapped at 60, so 3725 seconds is "62:05".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
