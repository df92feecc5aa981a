package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Terminal_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: "YES\n", want: true},
		{name: "confirm label", input: "delete\n", want: true},
		{name: "empty line", input: "\n", want: false},
		{name: "no", input: "n\n", want: false},
		{name: "end of input", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			terminal := NewTerminal(strings.NewReader(tt.input), out)

			got, err := terminal.Confirm(context.Background(), Prompt{
				Title:        "Delete Condition",
				Message:      "Are you sure you want to delete this condition?",
				ConfirmLabel: "Delete",
				Destructive:  true,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete Condition")
		})
	}
}

func Test_Terminal_PromptText(t *testing.T) {
	//Arrange
	terminal := NewTerminal(strings.NewReader("Q3 Water Quality\n.\n"), &bytes.Buffer{})

	//Act
	first, firstOK, firstErr := terminal.PromptText(context.Background(), Prompt{Title: "New Submission"})
	_, secondOK, secondErr := terminal.PromptText(context.Background(), Prompt{Title: "New Submission"})
	_, thirdOK, thirdErr := terminal.PromptText(context.Background(), Prompt{Title: "New Submission"})

	//Assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	require.NoError(t, thirdErr)
	assert.True(t, firstOK)
	assert.Equal(t, "Q3 Water Quality", first)
	assert.False(t, secondOK)
	assert.False(t, thirdOK)
}

func Test_Terminal_ReadLine_LastLineWithoutNewline(t *testing.T) {
	terminal := NewTerminal(strings.NewReader("quit"), &bytes.Buffer{})

	line, err := terminal.ReadLine(context.Background(), "cmvr> ")

	require.NoError(t, err)
	assert.Equal(t, "quit", line)
}

func Test_Terminal_ReadLine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	terminal := NewTerminal(strings.NewReader("ignored\n"), &bytes.Buffer{})

	_, err := terminal.ReadLine(ctx, "")

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Terminal_ReadLine_CancelWhileWaiting(t *testing.T) {
	//Arrange
	reader, writer := io.Pipe()
	defer writer.Close()
	terminal := NewTerminal(reader, &bytes.Buffer{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	//Act
	_, err := terminal.ReadLine(ctx, "cmvr> ")
	go writer.Write([]byte("show\n"))
	line, nextErr := terminal.ReadLine(context.Background(), "cmvr> ")

	//Assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NoError(t, nextErr)
	assert.Equal(t, "show", line)
}

func Test_Always_ConfirmsDestructivePrompts(t *testing.T) {
	ok, err := Always.Confirm(context.Background(), Prompt{Title: "Submit Report", Destructive: true})

	require.NoError(t, err)
	assert.True(t, ok)
}
