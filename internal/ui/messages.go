package ui

import (
	"sportseek/internal/session"
)

// completionMsg carries the outcome of a session Task back to Update
type completionMsg struct {
	completion session.Completion
}

// toastExpiredMsg removes a toast once its display time is over
type toastExpiredMsg struct {
	id int
}

// pagerClosedMsg is sent when the external pager returns control
type pagerClosedMsg struct {
	what string
	err  error
}
