package data

import (
	"context"
	"fmt"
	"minecomply/lib/api"
	"minecomply/lib/models"
	"net/url"

	"github.com/sirupsen/logrus"
)

// ComplianceRepository defines the compliance API operations used by the client
type ComplianceRepository interface {
	GetMe(ctx context.Context) (*models.Me, error)
	ListProjects(ctx context.Context) (*models.ProjectList, error)
	GetProjectConditions(ctx context.Context, projectID string) (*models.ProjectConditions, error)
	ListProjectSubmissions(ctx context.Context, projectID string) (*models.ProjectSubmissions, error)
	CreateSubmission(ctx context.Context, projectID string, request *models.CreateSubmissionRequest) (*models.Submission, error)
	GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error)
	ListSubmissionRecords(ctx context.Context, submissionID string) (*models.SubmissionRecords, error)
	AddComplianceRecord(ctx context.Context, submissionID string, request *models.ComplianceRecordRequest) (*models.Record, error)
}

// ComplianceDao implements ComplianceRepository over the HTTP API
type ComplianceDao struct {
	API    *api.Client
	Logger *logrus.Logger
}

// NewComplianceRepository creates a new ComplianceRepository instance
func NewComplianceRepository(client *api.Client, logger *logrus.Logger) ComplianceRepository {
	return &ComplianceDao{
		API:    client,
		Logger: logger,
	}
}

// GetMe returns the signed-in user with organizations, assignments and projects
func (dao *ComplianceDao) GetMe(ctx context.Context) (*models.Me, error) {
	var me models.Me
	if err := dao.API.Get(ctx, "/compliance/me", &me); err != nil {
		dao.logFailure("GetMe", err, nil)
		return nil, err
	}
	return &me, nil
}

// ListProjects returns the projects visible to the user
func (dao *ComplianceDao) ListProjects(ctx context.Context) (*models.ProjectList, error) {
	var list models.ProjectList
	if err := dao.API.Get(ctx, "/compliance/projects", &list); err != nil {
		dao.logFailure("ListProjects", err, nil)
		return nil, err
	}
	return &list, nil
}

// GetProjectConditions returns the compliance conditions of a project
func (dao *ComplianceDao) GetProjectConditions(ctx context.Context, projectID string) (*models.ProjectConditions, error) {
	var result models.ProjectConditions
	path := fmt.Sprintf("/compliance/projects/%s/conditions", url.PathEscape(projectID))
	if err := dao.API.Get(ctx, path, &result); err != nil {
		dao.logFailure("GetProjectConditions", err, logrus.Fields{"project_id": projectID})
		return nil, err
	}
	return &result, nil
}

// ListProjectSubmissions returns the submissions of a project
func (dao *ComplianceDao) ListProjectSubmissions(ctx context.Context, projectID string) (*models.ProjectSubmissions, error) {
	var result models.ProjectSubmissions
	path := fmt.Sprintf("/compliance/projects/%s/submissions", url.PathEscape(projectID))
	if err := dao.API.Get(ctx, path, &result); err != nil {
		dao.logFailure("ListProjectSubmissions", err, logrus.Fields{"project_id": projectID})
		return nil, err
	}
	return &result, nil
}

// CreateSubmission creates a new submission under a project
func (dao *ComplianceDao) CreateSubmission(ctx context.Context, projectID string, request *models.CreateSubmissionRequest) (*models.Submission, error) {
	var submission models.Submission
	path := fmt.Sprintf("/compliance/projects/%s/submissions", url.PathEscape(projectID))
	if err := dao.API.Post(ctx, path, request, &submission); err != nil {
		dao.logFailure("CreateSubmission", err, logrus.Fields{"project_id": projectID, "title": request.Title})
		return nil, err
	}

	dao.Logger.WithFields(logrus.Fields{
		"project_id":    projectID,
		"submission_id": submission.ID,
		"operation":     "CreateSubmission",
	}).Info("Submission created")
	return &submission, nil
}

// GetSubmission returns a single submission
func (dao *ComplianceDao) GetSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	var submission models.Submission
	path := fmt.Sprintf("/compliance/submissions/%s", url.PathEscape(submissionID))
	if err := dao.API.Get(ctx, path, &submission); err != nil {
		dao.logFailure("GetSubmission", err, logrus.Fields{"submission_id": submissionID})
		return nil, err
	}
	return &submission, nil
}

// ListSubmissionRecords returns the compliance records of a submission
func (dao *ComplianceDao) ListSubmissionRecords(ctx context.Context, submissionID string) (*models.SubmissionRecords, error) {
	var result models.SubmissionRecords
	path := fmt.Sprintf("/compliance/submissions/%s/records", url.PathEscape(submissionID))
	if err := dao.API.Get(ctx, path, &result); err != nil {
		dao.logFailure("ListSubmissionRecords", err, logrus.Fields{"submission_id": submissionID})
		return nil, err
	}
	return &result, nil
}

// AddComplianceRecord appends a record to a submission
func (dao *ComplianceDao) AddComplianceRecord(ctx context.Context, submissionID string, request *models.ComplianceRecordRequest) (*models.Record, error) {
	var record models.Record
	path := fmt.Sprintf("/compliance/submissions/%s/records", url.PathEscape(submissionID))
	if err := dao.API.Post(ctx, path, request, &record); err != nil {
		dao.logFailure("AddComplianceRecord", err, logrus.Fields{"submission_id": submissionID, "kind": request.Kind})
		return nil, err
	}
	return &record, nil
}

func (dao *ComplianceDao) logFailure(operation string, err error, fields logrus.Fields) {
	entry := dao.Logger.WithFields(logrus.Fields{
		"operation": operation,
		"status":    api.StatusCode(err),
	})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.WithError(err).Error("Compliance API call failed")
}
