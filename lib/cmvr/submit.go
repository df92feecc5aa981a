package cmvr

import (
	"context"
	"fmt"
	"minecomply/lib/api"
	"minecomply/lib/data"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// SubmittedMessage is shown after a report was accepted
const SubmittedMessage = "CMVR report submitted successfully!"

// Submitter runs the readiness check, the confirmations and the API calls
// that turn a Form into a submission with its records.
type Submitter struct {
	Compliance data.ComplianceRepository
	Logger     *logrus.Logger

	mu      sync.Mutex
	pending *pendingSubmission
}

// pendingSubmission is a submission created on the server whose records
// were not all accepted. A retry for the same form resumes it.
type pendingSubmission struct {
	form       *Form
	submission *models.Submission
	sent       int
}

// Submit returns api.ErrUserCancelled when the user backs out of a prompt
// and *api.ValidationError when required fields are missing. The form is
// only touched after every call succeeded. After a partial failure the next
// Submit of the same form reuses the created submission and sends only the
// records that were not accepted.
func (s *Submitter) Submit(ctx context.Context, form *Form, confirmer prompt.Confirmer) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := form.Draft()
	logger := s.Logger.WithFields(logrus.Fields{
		"project_id": draft.ProjectID,
		"conditions": len(draft.Conditions),
		"operation":  "Submit",
	})

	readiness, err := CheckReadiness(draft)
	if err != nil {
		logger.WithError(err).Info("Report not ready for submission")
		return nil, err
	}

	if readiness.IncompleteConditions > 0 {
		if err := confirm(ctx, confirmer, IncompletePrompt(readiness.IncompleteConditions)); err != nil {
			return nil, err
		}
	}
	if err := confirm(ctx, confirmer, SubmitPrompt); err != nil {
		return nil, err
	}

	if draft.ProjectID == "" {
		return nil, fmt.Errorf("report has no project")
	}

	pending := s.pending
	if pending == nil || pending.form != form {
		submission, err := s.Compliance.CreateSubmission(ctx, draft.ProjectID, submissionRequest(draft))
		if err != nil {
			return nil, fmt.Errorf("failed to create submission: %w", err)
		}
		pending = &pendingSubmission{form: form, submission: submission}
		s.pending = pending
	} else {
		logger.WithFields(logrus.Fields{
			"submission_id": pending.submission.ID,
			"sent":          pending.sent,
		}).Info("Resuming partially submitted report")
	}
	submission := pending.submission

	requests := recordRequests(draft)
	for pending.sent < len(requests) {
		request := requests[pending.sent]
		if _, err := s.Compliance.AddComplianceRecord(ctx, submission.ID, request); err != nil {
			logger.WithFields(logrus.Fields{
				"submission_id": submission.ID,
				"kind":          request.Kind,
				"condition_no":  request.ConditionNo,
			}).WithError(err).Error("Failed to add compliance record")
			return nil, fmt.Errorf("failed to add %s record: %w", request.Kind, err)
		}
		pending.sent++
	}

	s.pending = nil
	form.markSubmitted(submission.ID)
	logger.WithField("submission_id", submission.ID).Info("CMVR report submitted")
	return submission, nil
}

func confirm(ctx context.Context, confirmer prompt.Confirmer, p prompt.Prompt) error {
	ok, err := confirmer.Confirm(ctx, p)
	if err != nil {
		return err
	}
	if !ok {
		return api.ErrUserCancelled
	}
	return nil
}

func submissionRequest(draft models.Draft) *models.CreateSubmissionRequest {
	title := "CMVR Report"
	if period := strings.TrimSpace(draft.ReportInfo.ReportingPeriod); period != "" {
		title += " - " + period
	}
	request := &models.CreateSubmissionRequest{Title: title}
	if remarks := strings.TrimSpace(draft.GeneralRemarks); remarks != "" {
		request.Summary = &remarks
	}
	return request
}

// recordRequests builds one record per condition in form order, then the summary record
func recordRequests(draft models.Draft) []*models.ComplianceRecordRequest {
	requests := make([]*models.ComplianceRecordRequest, 0, len(draft.Conditions)+1)
	for _, condition := range draft.Conditions {
		requests = append(requests, &models.ComplianceRecordRequest{
			Kind:        models.RecordKindCondition,
			ConditionNo: condition.ConditionNo,
			Requirement: condition.Requirement,
			Status:      string(condition.Status),
			Remarks:     condition.Remarks,
		})
	}

	info := draft.ReportInfo
	requests = append(requests, &models.ComplianceRecordRequest{
		Kind:            models.RecordKindReportSummary,
		Remarks:         draft.GeneralRemarks,
		ReportInfo:      &info,
		Recommendations: draft.Recommendations,
		Attachments:     draft.UploadedImages,
	})
	return requests
}
