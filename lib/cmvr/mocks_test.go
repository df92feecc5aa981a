package cmvr

import (
	"context"
	"errors"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
)

// MockConfirmer answers prompts in order and records what it was asked
type MockConfirmer struct {
	Answers []bool
	Err     error
	Prompts []prompt.Prompt
}

func (m *MockConfirmer) Confirm(ctx context.Context, p prompt.Prompt) (bool, error) {
	m.Prompts = append(m.Prompts, p)
	if m.Err != nil {
		return false, m.Err
	}
	if len(m.Prompts) > len(m.Answers) {
		return false, errors.New("unexpected prompt: " + p.Title)
	}
	return m.Answers[len(m.Prompts)-1], nil
}

type MockComplianceRepository struct {
	CreateErr      error
	RecordErrAfter int
	Created        []*models.CreateSubmissionRequest
	Records        []*models.ComplianceRecordRequest
}

func (m *MockComplianceRepository) GetMe(ctx context.Context) (*models.Me, error) {
	return &models.Me{}, nil
}

func (m *MockComplianceRepository) ListProjects(ctx context.Context) (*models.ProjectList, error) {
	return &models.ProjectList{}, nil
}

func (m *MockComplianceRepository) GetProjectConditions(ctx context.Context, projectID string) (*models.ProjectConditions, error) {
	return &models.ProjectConditions{}, nil
}

func (m *MockComplianceRepository) ListProjectSubmissions(ctx context.Context, projectID string) (*models.ProjectSubmissions, error) {
	return &models.ProjectSubmissions{}, nil
}

func (m *MockComplianceRepository) CreateSubmission(ctx context.Context, projectID string, request *models.CreateSubmissionRequest) (*models.Submission, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Created = append(m.Created, request)
	return &models.Submission{ID: "sub-1", ProjectID: projectID, Title: request.Title, Status: "draft"}, nil
}

func (m *MockComplianceRepository) GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	return &models.Submission{ID: submissionID}, nil
}

func (m *MockComplianceRepository) ListSubmissionRecords(ctx context.Context, submissionID string) (*models.SubmissionRecords, error) {
	return &models.SubmissionRecords{}, nil
}

// AddComplianceRecord fails once RecordErrAfter records were accepted, when RecordErrAfter > 0
func (m *MockComplianceRepository) AddComplianceRecord(ctx context.Context, submissionID string, request *models.ComplianceRecordRequest) (*models.Record, error) {
	if m.RecordErrAfter > 0 && len(m.Records) >= m.RecordErrAfter {
		return nil, errors.New("record rejected")
	}
	m.Records = append(m.Records, request)
	return &models.Record{ID: "rec", SubmissionID: submissionID, Kind: request.Kind}, nil
}
