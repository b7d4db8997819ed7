package models

// Focus timer session types.
const (
	SessionFocus = "focus"
	SessionBreak = "break"
)

// Default session lengths in seconds.
const (
	DefaultFocusSeconds = 25 * 60
	DefaultBreakSeconds = 5 * 60
)

// FocusTimerState is the single application-wide timer value. Exactly one
// session may be running or paused at a time; a completed session is
// represented by TimeLeft == 0 && !Active.
type FocusTimerState struct {
	TaskID   string `json:"taskId,omitempty"`
	Active   bool   `json:"isActive"`
	TimeLeft int    `json:"timeLeft"` // seconds
	Session  string `json:"sessionType"`
}

// Idle reports whether no session occupies the timer.
func (s FocusTimerState) Idle() bool {
	return s.TaskID == "" && !s.Active
}
