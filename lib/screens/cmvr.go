package screens

import (
	"context"
	"minecomply/lib/cmvr"
	"minecomply/lib/data"
	"minecomply/lib/models"
	"minecomply/lib/prompt"

	"github.com/sirupsen/logrus"
)

// CMVRScreen drives one CMVR report from editing to submission
type CMVRScreen struct {
	Status
	Form      *cmvr.Form
	Submitter *cmvr.Submitter
	Storage   data.StorageRepository
	Logger    *logrus.Logger
}

// NewCMVRScreen opens an empty report for the given project
func NewCMVRScreen(projectID, projectName string, compliance data.ComplianceRepository, storage data.StorageRepository, logger *logrus.Logger) *CMVRScreen {
	return &CMVRScreen{
		Form: cmvr.NewForm(projectID, projectName),
		Submitter: &cmvr.Submitter{
			Compliance: compliance,
			Logger:     logger,
		},
		Storage: storage,
		Logger:  logger,
	}
}

// Submit runs the submission flow. On success the screen is done.
func (s *CMVRScreen) Submit(ctx context.Context, confirmer prompt.Confirmer) *models.Submission {
	s.begin()
	submission, err := s.Submitter.Submit(ctx, s.Form, confirmer)
	if err != nil {
		s.fail("Submission Failed", err)
		return nil
	}
	s.set(StateDone, &Notice{Title: "Success", Message: cmvr.SubmittedMessage})
	return submission
}

// AttachImage uploads a supporting file and records its storage path on the form
func (s *CMVRScreen) AttachImage(ctx context.Context, params models.UploadFromSourceParams) {
	s.begin()
	result, err := s.Storage.UploadFromSource(ctx, params)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{
			"file_name": params.FileName,
			"operation": "AttachImage",
		}).WithError(err).Warn("Attachment upload failed")
		s.fail("Upload Failed", err)
		return
	}
	s.Form.AddUploadedImage(result.Path)
	s.succeed(&Notice{Title: "Uploaded", Message: result.Path})
}

// DeleteCondition removes a condition after confirmation
func (s *CMVRScreen) DeleteCondition(ctx context.Context, id string, confirmer prompt.Confirmer) bool {
	s.set(StateIdle, nil)
	deleted, err := s.Form.DeleteCondition(ctx, id, confirmer)
	if err != nil {
		s.fail("Error", err)
		return false
	}
	return deleted
}
