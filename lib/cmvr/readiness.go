package cmvr

import (
	"fmt"
	"minecomply/lib/api"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
)

// Readiness is the outcome of a passing readiness check
type Readiness struct {
	IncompleteConditions int
}

// CheckReadiness blocks the submission with *api.ValidationError when a
// required report info field is empty, otherwise counts the conditions
// that still lack a status or remarks.
func CheckReadiness(draft models.Draft) (*Readiness, error) {
	var missing []string
	for _, field := range models.RequiredReportInfoFields {
		value, err := draft.ReportInfo.Get(field)
		if err != nil {
			return nil, err
		}
		if value == "" {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return nil, &api.ValidationError{
			Title:   "Missing Information",
			Message: "Please fill in all required report information fields.",
			Missing: missing,
		}
	}

	readiness := &Readiness{}
	for _, condition := range draft.Conditions {
		if condition.Incomplete() {
			readiness.IncompleteConditions++
		}
	}
	return readiness, nil
}

// IncompletePrompt asks whether to continue with count incomplete conditions
func IncompletePrompt(count int) prompt.Prompt {
	return prompt.Prompt{
		Title:        "Incomplete Report",
		Message:      fmt.Sprintf("You have %d condition(s) without status or remarks. Continue anyway?", count),
		ConfirmLabel: "Continue",
	}
}

// SubmitPrompt is the final confirmation before anything is sent
var SubmitPrompt = prompt.Prompt{
	Title:        "Submit Report",
	Message:      "Are you sure you want to submit this CMVR report?",
	ConfirmLabel: "Submit",
}
