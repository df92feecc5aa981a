package screens

import (
	"errors"
	"minecomply/lib/api"
	"sync"
)

// State is the lifecycle of a screen action
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
	// StateDone means the screen finished its job and should be left
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Notice is a titled message for the user, the equivalent of an alert
type Notice struct {
	Title   string
	Message string
}

// NoticeFromError turns an action failure into a Notice. Validation
// failures keep their own title.
func NoticeFromError(title string, err error) *Notice {
	var validation *api.ValidationError
	if errors.As(err, &validation) {
		return &Notice{Title: validation.Title, Message: validation.Message}
	}
	return &Notice{Title: title, Message: err.Error()}
}

// Status carries the state and last notice of a screen
type Status struct {
	mu     sync.Mutex
	state  State
	notice *Notice
}

func (s *Status) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Notice returns the notice of the last action, or nil
func (s *Status) Notice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *Status) set(state State, notice *Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.notice = notice
}

func (s *Status) begin() {
	s.set(StateLoading, nil)
}

func (s *Status) succeed(notice *Notice) {
	s.set(StateSuccess, notice)
}

// fail records err; a user cancel returns the screen to idle silently
func (s *Status) fail(title string, err error) {
	if errors.Is(err, api.ErrUserCancelled) {
		s.set(StateIdle, nil)
		return
	}
	s.set(StateError, NoticeFromError(title, err))
}
