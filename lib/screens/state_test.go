package screens

import (
	"errors"
	"fmt"
	"minecomply/lib/api"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Status_Fail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantState  State
		wantNotice *Notice
	}{
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantState:  StateError,
			wantNotice: &Notice{Title: "Failed", Message: "boom"},
		},
		{
			name:       "validation keeps its title",
			err:        &api.ValidationError{Title: "Missing Information", Message: "Please fill in all required report information fields."},
			wantState:  StateError,
			wantNotice: &Notice{Title: "Missing Information", Message: "Please fill in all required report information fields."},
		},
		{
			name:      "cancel is silent",
			err:       fmt.Errorf("submit: %w", api.ErrUserCancelled),
			wantState: StateIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := &Status{}
			status.begin()

			status.fail("Failed", tt.err)

			assert.Equal(t, tt.wantState, status.State())
			assert.Equal(t, tt.wantNotice, status.Notice())
		})
	}
}

func Test_State_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "unknown", State(42).String())
}
