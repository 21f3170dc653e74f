package tui

import "time"

// clockTickMsg keeps the minutes-until-departure column current
type clockTickMsg time.Time

// autoRefreshTickMsg triggers a departure refresh. gen ties the tick to the
// auto-refresh session that scheduled it; ticks from a session that was
// switched off are ignored.
type autoRefreshTickMsg struct {
	gen int
}
