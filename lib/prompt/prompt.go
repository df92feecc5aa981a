package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt is a modal question put to the user
type Prompt struct {
	Title        string
	Message      string
	ConfirmLabel string
	Destructive  bool
}

// Confirmer asks the user to confirm or cancel. A cancel is (false, nil).
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// TextPrompter asks the user for one line of text. ok is false on cancel.
type TextPrompter interface {
	PromptText(ctx context.Context, p Prompt) (text string, ok bool, err error)
}

// ConfirmerFunc adapts a function to Confirmer
type ConfirmerFunc func(ctx context.Context, p Prompt) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// Always confirms every prompt. Used for non-interactive runs.
var Always = ConfirmerFunc(func(ctx context.Context, p Prompt) (bool, error) {
	return true, nil
})

// Terminal implements Confirmer and TextPrompter over a line-oriented stream
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// pending is a read still in flight after its caller's context ended.
	// The next ReadLine takes its line instead of starting another read.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm prints the prompt and accepts "y", "yes" or the confirm label.
// End of input counts as cancel.
func (t *Terminal) Confirm(ctx context.Context, p Prompt) (bool, error) {
	label := p.ConfirmLabel
	if label == "" {
		label = "OK"
	}
	t.header(p)
	marker := ""
	if p.Destructive {
		marker = "!"
	}
	answer, err := t.ReadLine(ctx, fmt.Sprintf("%s%s / Cancel [y/N]: ", label, marker))
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes", strings.ToLower(label):
		return true, nil
	}
	return false, nil
}

// PromptText prints the prompt and returns the entered line.
// A line of just "." or end of input cancels.
func (t *Terminal) PromptText(ctx context.Context, p Prompt) (string, bool, error) {
	t.header(p)
	text, err := t.ReadLine(ctx, "> ")
	if errors.Is(err, io.EOF) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if text == "." {
		return "", false, nil
	}
	return text, true, nil
}

// ReadLine writes label and reads one line without the trailing newline.
// It returns ctx.Err() as soon as ctx ends, even while waiting for input.
func (t *Terminal) ReadLine(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if label != "" {
		fmt.Fprint(t.out, label)
	}
	if t.pending == nil {
		t.pending = make(chan lineResult, 1)
		go func(in *bufio.Reader, result chan<- lineResult) {
			line, err := in.ReadString('\n')
			result <- lineResult{line: line, err: err}
		}(t.in, t.pending)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-t.pending:
		t.pending = nil
		if result.err != nil && !(errors.Is(result.err, io.EOF) && result.line != "") {
			return "", result.err
		}
		return strings.TrimRight(result.line, "\r\n"), nil
	}
}

func (t *Terminal) header(p Prompt) {
	if p.Title != "" {
		fmt.Fprintf(t.out, "\n%s\n", p.Title)
	}
	if p.Message != "" {
		fmt.Fprintf(t.out, "%s\n", p.Message)
	}
}
