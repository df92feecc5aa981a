package cmvr

import (
	"context"
	"errors"
	"minecomply/lib/models"
	"minecomply/lib/prompt"

	"github.com/google/uuid"
)

// ErrConditionNotFound means an ID did not match any condition in the form.
// It indicates a caller bug, not a user error.
var ErrConditionNotFound = errors.New("condition not found")

// DeleteConditionPrompt is shown before a condition is removed
var DeleteConditionPrompt = prompt.Prompt{
	Title:        "Delete Condition",
	Message:      "Are you sure you want to delete this condition?",
	ConfirmLabel: "Delete",
	Destructive:  true,
}

// Form holds the working state of one CMVR report. It has a single writer:
// the screen driving it. Accessors return copies.
type Form struct {
	projectID       string
	submissionID    string
	reportInfo      models.ReportInfo
	conditions      []models.ComplianceCondition
	generalRemarks  string
	recommendations string
	uploadedImages  []string

	// NewID generates condition IDs; defaults to random UUIDs
	NewID func() string
}

// NewForm starts an empty report for projectID with the project name prefilled
func NewForm(projectID, projectName string) *Form {
	return &Form{
		projectID:  projectID,
		reportInfo: models.ReportInfo{ProjectName: projectName},
	}
}

// AddCondition appends a blank condition and returns it
func (f *Form) AddCondition() models.ComplianceCondition {
	condition := models.ComplianceCondition{ID: f.newID()}
	f.conditions = append(f.conditions, condition)
	return condition
}

// DeleteCondition removes the condition after the user confirms. It returns
// false with a nil error when the user cancels.
func (f *Form) DeleteCondition(ctx context.Context, id string, confirmer prompt.Confirmer) (bool, error) {
	if f.IndexOf(id) < 0 {
		return false, ErrConditionNotFound
	}

	ok, err := confirmer.Confirm(ctx, DeleteConditionPrompt)
	if err != nil || !ok {
		return false, err
	}

	index := f.IndexOf(id)
	if index < 0 {
		return false, ErrConditionNotFound
	}
	remaining := make([]models.ComplianceCondition, 0, len(f.conditions)-1)
	remaining = append(remaining, f.conditions[:index]...)
	remaining = append(remaining, f.conditions[index+1:]...)
	f.conditions = remaining
	return true, nil
}

// UpdateCondition replaces one field of one condition
func (f *Form) UpdateCondition(id string, field models.ConditionField, value string) error {
	index := f.IndexOf(id)
	if index < 0 {
		return ErrConditionNotFound
	}
	updated, err := f.conditions[index].With(field, value)
	if err != nil {
		return err
	}
	f.conditions[index] = updated
	return nil
}

// UpdateReportInfo replaces one report info field verbatim
func (f *Form) UpdateReportInfo(field models.ReportInfoField, value string) error {
	updated, err := f.reportInfo.With(field, value)
	if err != nil {
		return err
	}
	f.reportInfo = updated
	return nil
}

func (f *Form) SetGeneralRemarks(text string) {
	f.generalRemarks = text
}

func (f *Form) SetRecommendations(text string) {
	f.recommendations = text
}

// SetUploadedImages replaces the attachment list wholesale
func (f *Form) SetUploadedImages(paths []string) {
	f.uploadedImages = append([]string(nil), paths...)
}

func (f *Form) AddUploadedImage(path string) {
	f.uploadedImages = append(f.uploadedImages, path)
}

func (f *Form) ProjectID() string {
	return f.projectID
}

// SubmissionID is set once the report has been submitted
func (f *Form) SubmissionID() string {
	return f.submissionID
}

func (f *Form) ReportInfo() models.ReportInfo {
	return f.reportInfo
}

func (f *Form) Conditions() []models.ComplianceCondition {
	return append([]models.ComplianceCondition(nil), f.conditions...)
}

// ConditionAt returns the condition at a zero-based display position
func (f *Form) ConditionAt(index int) (models.ComplianceCondition, bool) {
	if index < 0 || index >= len(f.conditions) {
		return models.ComplianceCondition{}, false
	}
	return f.conditions[index], true
}

// IndexOf returns the position of id, or -1
func (f *Form) IndexOf(id string) int {
	for i, condition := range f.conditions {
		if condition.ID == id {
			return i
		}
	}
	return -1
}

func (f *Form) GeneralRemarks() string {
	return f.generalRemarks
}

func (f *Form) Recommendations() string {
	return f.recommendations
}

func (f *Form) UploadedImages() []string {
	return append([]string(nil), f.uploadedImages...)
}

// Draft snapshots the whole form
func (f *Form) Draft() models.Draft {
	return models.Draft{
		ProjectID:       f.projectID,
		SubmissionID:    f.submissionID,
		ReportInfo:      f.reportInfo,
		Conditions:      f.Conditions(),
		GeneralRemarks:  f.generalRemarks,
		Recommendations: f.recommendations,
		UploadedImages:  f.UploadedImages(),
	}
}

func (f *Form) markSubmitted(submissionID string) {
	f.submissionID = submissionID
}

func (f *Form) newID() string {
	if f.NewID != nil {
		return f.NewID()
	}
	return uuid.NewString()
}
