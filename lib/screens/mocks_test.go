package screens

import (
	"context"
	"errors"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
	"sync"
)

type MockComplianceRepository struct {
	mu          sync.Mutex
	Me          *models.Me
	MeErr       error
	Projects    []models.Project
	ProjectsErr error
	Submissions map[string][]models.Submission
	ListErr     error
	CreateErr   error
	Created     []*models.CreateSubmissionRequest
	ListCalls   []string

	// Gates holds per project channels that ListProjectSubmissions waits on
	Gates map[string]chan struct{}

	// Entered receives the project id when ListProjectSubmissions starts
	Entered chan string
}

func (m *MockComplianceRepository) GetMe(ctx context.Context) (*models.Me, error) {
	return m.Me, m.MeErr
}

func (m *MockComplianceRepository) ListProjects(ctx context.Context) (*models.ProjectList, error) {
	if m.ProjectsErr != nil {
		return nil, m.ProjectsErr
	}
	return &models.ProjectList{Projects: m.Projects}, nil
}

func (m *MockComplianceRepository) GetProjectConditions(ctx context.Context, projectID string) (*models.ProjectConditions, error) {
	return &models.ProjectConditions{}, nil
}

func (m *MockComplianceRepository) ListProjectSubmissions(ctx context.Context, projectID string) (*models.ProjectSubmissions, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, projectID)
	gate := m.Gates[projectID]
	m.mu.Unlock()

	if m.Entered != nil {
		m.Entered <- projectID
	}
	if gate != nil {
		<-gate
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return &models.ProjectSubmissions{Submissions: m.Submissions[projectID]}, nil
}

func (m *MockComplianceRepository) CreateSubmission(ctx context.Context, projectID string, request *models.CreateSubmissionRequest) (*models.Submission, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, request)
	submission := models.Submission{ID: "new-1", ProjectID: projectID, Title: request.Title, Status: "draft"}
	if m.Submissions == nil {
		m.Submissions = map[string][]models.Submission{}
	}
	m.Submissions[projectID] = append(m.Submissions[projectID], submission)
	return &submission, nil
}

func (m *MockComplianceRepository) GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}

func (m *MockComplianceRepository) ListSubmissionRecords(ctx context.Context, submissionID string) (*models.SubmissionRecords, error) {
	return nil, errors.New("not implemented")
}

func (m *MockComplianceRepository) AddComplianceRecord(ctx context.Context, submissionID string, request *models.ComplianceRecordRequest) (*models.Record, error) {
	return &models.Record{ID: "rec", Kind: request.Kind}, nil
}

type MockStorageRepository struct {
	mu      sync.Mutex
	Err     error
	Calls   []models.UploadFromSourceParams
	Gate    chan struct{}
	Entered chan struct{}
}

func (m *MockStorageRepository) CreateSignedUploadURL(ctx context.Context, filename string, upsert *bool) (*models.SignedUploadURLResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *MockStorageRepository) CreateSignedDownloadURL(ctx context.Context, path string, expiresIn *int) (*models.SignedDownloadURLResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *MockStorageRepository) UploadFromSource(ctx context.Context, params models.UploadFromSourceParams) (*models.UploadResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, params)
	m.mu.Unlock()
	if m.Entered != nil {
		m.Entered <- struct{}{}
	}
	if m.Gate != nil {
		<-m.Gate
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.UploadResult{Path: "uploads/" + params.FileName}, nil
}

func (m *MockStorageRepository) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type MockAuthDebugRepository struct {
	Me      *models.AuthDebugMe
	Headers *models.AuthDebugHeaders
	Err     error
}

func (m *MockAuthDebugRepository) GetAuthDebugMe(ctx context.Context) (*models.AuthDebugMe, error) {
	return m.Me, m.Err
}

func (m *MockAuthDebugRepository) GetAuthDebugHeaders(ctx context.Context) (*models.AuthDebugHeaders, error) {
	return m.Headers, m.Err
}

type MockConfirmer struct {
	Answers []bool
	Prompts []prompt.Prompt
}

func (m *MockConfirmer) Confirm(ctx context.Context, p prompt.Prompt) (bool, error) {
	m.Prompts = append(m.Prompts, p)
	if len(m.Prompts) > len(m.Answers) {
		return false, nil
	}
	return m.Answers[len(m.Prompts)-1], nil
}

type MockTextPrompter struct {
	Text    string
	OK      bool
	Err     error
	Prompts []prompt.Prompt
}

func (m *MockTextPrompter) PromptText(ctx context.Context, p prompt.Prompt) (string, bool, error) {
	m.Prompts = append(m.Prompts, p)
	return m.Text, m.OK, m.Err
}

type MockSigner struct {
	Err   error
	Calls int
}

func (m *MockSigner) SignOut(ctx context.Context) error {
	m.Calls++
	return m.Err
}
