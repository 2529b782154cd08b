package analysis

import (
	"fmt"
	"time"
)

// RelativeTime renders how long ago t was, relative to now, in the
// coarse units the dashboard shows ("just now", "5m ago", "2h ago",
// "3d ago"). Future timestamps clamp to "just now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
