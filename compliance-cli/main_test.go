package main

import (
	"bytes"
	"context"
	"minecomply/lib/auth"
	"minecomply/lib/data"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
	"minecomply/lib/screens"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MockComplianceRepository serves the submission lookups used by the records command
type MockComplianceRepository struct {
	data.ComplianceRepository
	Submission *models.Submission
	Records    []models.Record
	Calls      []string
}

func (m *MockComplianceRepository) GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	m.Calls = append(m.Calls, "GetSubmission:"+submissionID)
	return m.Submission, nil
}

func (m *MockComplianceRepository) ListSubmissionRecords(ctx context.Context, submissionID string) (*models.SubmissionRecords, error) {
	m.Calls = append(m.Calls, "ListSubmissionRecords:"+submissionID)
	return &models.SubmissionRecords{Submission: *m.Submission, Records: m.Records}, nil
}

func Test_CutWord(t *testing.T) {
	tests := []struct {
		line     string
		wantWord string
		wantRest string
	}{
		{line: "set 2 remarks  dust  within limits ", wantWord: "set", wantRest: "2 remarks  dust  within limits"},
		{line: "  add", wantWord: "add", wantRest: ""},
		{line: "", wantWord: "", wantRest: ""},
	}

	for _, tt := range tests {
		word, rest := cutWord(tt.line)
		assert.Equal(t, tt.wantWord, word)
		assert.Equal(t, tt.wantRest, rest)
	}
}

func Test_ConditionID_ResolvesCurrentPosition(t *testing.T) {
	//Arrange
	screen := screens.NewCMVRScreen("p-1", "North Pit", nil, nil, logrus.New())
	first := screen.Form.AddCondition()
	second := screen.Form.AddCondition()

	//Act
	id, err := conditionID(screen, "2")
	_, outOfRange := conditionID(screen, "3")
	_, notNumber := conditionID(screen, "two")

	//Assert
	require.NoError(t, err)
	assert.Equal(t, second.ID, id)
	assert.NotEqual(t, first.ID, id)
	assert.Error(t, outOfRange)
	assert.Error(t, notNumber)
}

func Test_UploadParams(t *testing.T) {
	params, err := uploadParams("file:///tmp/site-photo.png", "", "")
	require.NoError(t, err)
	assert.Equal(t, "site-photo.png", params.FileName)
	assert.Equal(t, "image/png", params.ContentType)

	params, err = uploadParams("/tmp/report.bin", "renamed.txt", "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "renamed.txt", params.FileName)
	assert.Equal(t, "text/csv", params.ContentType)

	_, err = uploadParams("", "", "")
	assert.Error(t, err)
}

func Test_RunRecords_LoadsSubmissionThenRecords(t *testing.T) {
	//Arrange
	summary := "Quarterly monitoring"
	repository := &MockComplianceRepository{
		Submission: &models.Submission{ID: "sub-9", Title: "CMVR Report - Q3 2025", Status: "submitted", Summary: &summary},
		Records:    []models.Record{{ID: "rec-1", SubmissionID: "sub-9", Kind: models.RecordKindCondition}},
	}
	complianceRepository = repository
	printer = message.NewPrinter(language.English)

	//Act
	err := runRecords(context.Background(), []string{"-submission", "sub-9"})

	//Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"GetSubmission:sub-9", "ListSubmissionRecords:sub-9"}, repository.Calls)
}

func Test_RunRecords_RequiresSubmission(t *testing.T) {
	err := runRecords(context.Background(), nil)

	assert.EqualError(t, err, "-submission is required")
}

func Test_ExpiryState(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		expiresAt time.Time
		want      string
	}{
		{name: "no exp claim", want: "no expiry"},
		{name: "already expired", expiresAt: now.Add(-time.Second), want: "expired"},
		{name: "inside refresh window", expiresAt: now.Add(30 * time.Second), want: "refresh due"},
		{name: "valid", expiresAt: now.Add(time.Hour), want: "valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expiryState(&auth.Claims{ExpiresAt: tt.expiresAt}, now))
		})
	}
}

func Test_SubmitConfirmer(t *testing.T) {
	//Arrange
	terminal = prompt.NewTerminal(strings.NewReader(""), &bytes.Buffer{})

	//Act
	yes, yesErr := submitConfirmer(true).Confirm(context.Background(), prompt.Prompt{Title: "Submit Report"})
	interactive, interactiveErr := submitConfirmer(false).Confirm(context.Background(), prompt.Prompt{Title: "Submit Report"})

	//Assert
	require.NoError(t, yesErr)
	require.NoError(t, interactiveErr)
	assert.True(t, yes)
	assert.False(t, interactive)
}
