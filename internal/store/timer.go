package store

import "ai-task-manager/internal/models"

// StartFocusTimer begins a focus session for taskID. Starting while another
// session is running or paused replaces it outright; there is no queue.
// seconds <= 0 selects the default session length.
func (s *Store) StartFocusTimer(taskID string, seconds int) models.FocusTimerState {
	if seconds <= 0 {
		seconds = models.DefaultFocusSeconds
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = models.FocusTimerState{
		TaskID:   taskID,
		Active:   true,
		TimeLeft: seconds,
		Session:  models.SessionFocus,
	}
	return s.timer
}

// PauseFocusTimer freezes the running session; TimeLeft keeps its value.
func (s *Store) PauseFocusTimer() models.FocusTimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer.TaskID != "" {
		s.timer.Active = false
	}
	return s.timer
}

// ResumeFocusTimer restarts a paused session.
func (s *Store) ResumeFocusTimer() models.FocusTimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer.TaskID != "" && s.timer.TimeLeft > 0 {
		s.timer.Active = true
	}
	return s.timer
}

// StopFocusTimer returns the timer to idle.
func (s *Store) StopFocusTimer() models.FocusTimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = models.FocusTimerState{}
	return s.timer
}

// TickFocusTimer advances the running session by one second of wall-clock
// time; an external ticker drives it. Reaching zero flips Active off
// (session complete = TimeLeft 0 && !Active); further ticks are no-ops.
func (s *Store) TickFocusTimer() models.FocusTimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.timer.Active {
		return s.timer
	}
	s.timer.TimeLeft--
	if s.timer.TimeLeft <= 0 {
		s.timer.TimeLeft = 0
		s.timer.Active = false
	}
	return s.timer
}

// FocusTimer reads the current timer state.
func (s *Store) FocusTimer() models.FocusTimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer
}
