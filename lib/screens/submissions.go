package screens

import (
	"context"
	"errors"
	"minecomply/lib/data"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultSubmissionTitle is used when the user leaves the title blank
const DefaultSubmissionTitle = "New Submission"

// NewSubmissionPrompt asks for the title of a new submission
var NewSubmissionPrompt = prompt.Prompt{
	Title:        "New Submission",
	Message:      "Enter a title for your submission",
	ConfirmLabel: "Create",
}

// errStaleResponse marks a fetch superseded by a newer one
var errStaleResponse = errors.New("stale response")

// SubmissionsScreen lists the submissions of the selected project.
// Every submissions fetch is tagged with a generation so that a response
// for a project that is no longer selected is dropped.
type SubmissionsScreen struct {
	Status
	Compliance data.ComplianceRepository
	Logger     *logrus.Logger

	mu          sync.Mutex
	projects    []models.Project
	selectedID  string
	submissions []models.SubmissionListItem
	filter      models.SubmissionStatus
	generation  uint64
}

// Load fetches the projects, selects the first one when nothing is
// selected yet and loads its submissions.
func (s *SubmissionsScreen) Load(ctx context.Context) {
	s.begin()
	if err := s.loadProjects(ctx); err != nil {
		s.fail("Failed to load projects", err)
		return
	}
	s.reloadSelection(ctx)
}

// Refresh reloads the projects and then the current selection's submissions
func (s *SubmissionsScreen) Refresh(ctx context.Context) {
	s.Load(ctx)
}

// SelectProject switches the selection and fetches its submissions
func (s *SubmissionsScreen) SelectProject(ctx context.Context, projectID string) {
	s.mu.Lock()
	s.selectedID = projectID
	s.submissions = nil
	s.mu.Unlock()

	s.begin()
	s.finishLoad(s.loadSubmissions(ctx, projectID), nil)
}

// SetFilter restricts Visible to one status; the empty status shows all
func (s *SubmissionsScreen) SetFilter(status models.SubmissionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = status
}

func (s *SubmissionsScreen) Filter() models.SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Visible returns the submissions that pass the filter
func (s *SubmissionsScreen) Visible() []models.SubmissionListItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	visible := make([]models.SubmissionListItem, 0, len(s.submissions))
	for _, item := range s.submissions {
		if s.filter == "" || item.Status == s.filter {
			visible = append(visible, item)
		}
	}
	return visible
}

func (s *SubmissionsScreen) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Project(nil), s.projects...)
}

// SelectedProject returns the selected project, or nil
func (s *SubmissionsScreen) SelectedProject() *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == s.selectedID {
			project := s.projects[i]
			return &project
		}
	}
	return nil
}

func (s *SubmissionsScreen) SelectedProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// NewSubmission prompts for a title and creates a submission in the
// selected project, then reloads the list.
func (s *SubmissionsScreen) NewSubmission(ctx context.Context, prompter prompt.TextPrompter) *models.Submission {
	projectID := s.SelectedProjectID()
	if projectID == "" {
		s.set(StateError, &Notice{Title: "No project selected", Message: "Please select a project first."})
		return nil
	}

	text, ok, err := prompter.PromptText(ctx, NewSubmissionPrompt)
	if err != nil {
		s.fail("Failed to create submission", err)
		return nil
	}
	if !ok {
		return nil
	}
	title := text
	if strings.TrimSpace(text) == "" {
		title = DefaultSubmissionTitle
	}

	s.begin()
	submission, err := s.Compliance.CreateSubmission(ctx, projectID, &models.CreateSubmissionRequest{Title: title})
	if err != nil {
		s.fail("Failed to create submission", err)
		return nil
	}
	s.finishLoad(s.loadSubmissions(ctx, projectID), &Notice{Title: "Created", Message: "Your submission has been created."})
	return submission
}

func (s *SubmissionsScreen) loadProjects(ctx context.Context) error {
	list, err := s.Compliance.ListProjects(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = list.Projects
	if s.selectedID == "" && len(list.Projects) > 0 {
		s.selectedID = list.Projects[0].ID
	}
	return nil
}

func (s *SubmissionsScreen) reloadSelection(ctx context.Context) {
	projectID := s.SelectedProjectID()
	if projectID == "" {
		s.succeed(nil)
		return
	}
	s.finishLoad(s.loadSubmissions(ctx, projectID), nil)
}

// finishLoad records the outcome of a submissions fetch. A superseded
// fetch leaves the status to the fetch that replaced it.
func (s *SubmissionsScreen) finishLoad(err error, notice *Notice) {
	switch {
	case errors.Is(err, errStaleResponse):
	case err != nil:
		s.fail("Failed to load submissions", err)
	default:
		s.succeed(notice)
	}
}

// loadSubmissions applies the result only if no newer fetch started meanwhile
func (s *SubmissionsScreen) loadSubmissions(ctx context.Context, projectID string) error {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	result, err := s.Compliance.ListProjectSubmissions(ctx, projectID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		s.Logger.WithFields(logrus.Fields{
			"project_id": projectID,
			"operation":  "loadSubmissions",
		}).Debug("Discarding stale submissions response")
		return errStaleResponse
	}
	if err != nil {
		return err
	}

	items := make([]models.SubmissionListItem, 0, len(result.Submissions))
	for _, submission := range result.Submissions {
		items = append(items, submission.ToListItem())
	}
	s.submissions = items
	return nil
}
