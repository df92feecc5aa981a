package screens

import (
	"context"
	"encoding/json"
	"fmt"
	"minecomply/lib/data"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
	"minecomply/lib/util"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SignOutPrompt confirms a sign out
var SignOutPrompt = prompt.Prompt{
	Title:        "Sign Out",
	Message:      "Are you sure you want to sign out?",
	ConfirmLabel: "Sign Out",
	Destructive:  true,
}

// Signer ends the current session
type Signer interface {
	SignOut(ctx context.Context) error
}

// ProfileScreen holds the account actions and the auth/upload diagnostics
type ProfileScreen struct {
	Status
	AuthDebug data.AuthDebugRepository
	Storage   data.StorageRepository
	Session   Signer
	UserID    string
	UserEmail string
	Logger    *logrus.Logger
	Now       func() time.Time

	mu        sync.Mutex
	uploading bool
}

// TestAPIAuth calls the backend auth echo endpoint
func (s *ProfileScreen) TestAPIAuth(ctx context.Context) {
	s.begin()
	result, err := s.AuthDebug.GetAuthDebugMe(ctx)
	if err != nil {
		s.fail("Auth Failed", err)
		return
	}

	id, email := "?", "?"
	if result.User != nil {
		id = orUnknown(result.User.ID)
		email = orUnknown(result.User.Email)
	}
	s.succeed(&Notice{
		Title:   "Auth OK",
		Message: fmt.Sprintf("User: %s\nEmail: %s\nAuth header: %s", id, email, presence(result.Authorization)),
	})
}

// TokenInfo shows the token header and claims as the backend decoded them
func (s *ProfileScreen) TokenInfo(ctx context.Context) {
	s.begin()
	result, err := s.AuthDebug.GetAuthDebugHeaders(ctx)
	if err != nil {
		s.fail("Token Info Failed", err)
		return
	}

	header := models.TokenHeader{}
	if result.Header != nil {
		header = *result.Header
	}
	payload := models.TokenPayload{}
	if result.Payload != nil {
		payload = *result.Payload
	}
	lines := []string{
		"Auth header: " + presence(result.Authorization),
		"alg: " + orUnknown(header.Alg),
		"kid: " + orUnknown(header.Kid),
		"iss: " + orUnknown(payload.Iss),
		"aud: " + orUnknown(payload.Aud),
		"sub: " + orUnknown(payload.Sub),
	}
	s.succeed(&Notice{Title: "Token Info", Message: strings.Join(lines, "\n")})
}

// SampleUpload pushes a small generated text file through the upload
// pipeline. A call while another is running returns immediately.
func (s *ProfileScreen) SampleUpload(ctx context.Context) {
	s.mu.Lock()
	if s.uploading {
		s.mu.Unlock()
		return
	}
	s.uploading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.mu.Unlock()
	}()

	s.begin()
	now := s.now()
	fileName := fmt.Sprintf("profile-sample-%d.txt", now.UnixMilli())
	content := fmt.Sprintf(`Sample profile upload created at %s from MineComply CLI.

User ID: %s
User Email: %s
Device timestamp: %d

This is a test upload to verify that file uploads are working correctly.`,
		now.UTC().Format(time.RFC3339), util.FirstNonEmpty(s.UserID, "unknown"), util.FirstNonEmpty(s.UserEmail, "unknown"), now.UnixMilli())

	upsert := true
	result, err := s.Storage.UploadFromSource(ctx, models.UploadFromSourceParams{
		SourceURI:   data.DataURI("text/plain", []byte(content)),
		FileName:    fileName,
		ContentType: "text/plain; charset=utf-8",
		Upsert:      &upsert,
	})
	if err != nil {
		s.Logger.WithFields(logrus.Fields{
			"file_name": fileName,
			"operation": "SampleUpload",
		}).WithError(err).Error("Sample upload failed")
		s.set(StateError, &Notice{Title: "Upload Failed", Message: "Error: " + uploadErrorDetails(err)})
		return
	}

	s.succeed(&Notice{
		Title:   "Upload Successful",
		Message: fmt.Sprintf("File uploaded successfully!\n\nFilename: %s\nPath: %s\nSize: %d characters", fileName, result.Path, len(content)),
	})
}

// Uploading reports whether a sample upload is in flight
func (s *ProfileScreen) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// SignOut ends the session after confirmation
func (s *ProfileScreen) SignOut(ctx context.Context, confirmer prompt.Confirmer) {
	ok, err := confirmer.Confirm(ctx, SignOutPrompt)
	if err != nil {
		s.fail("Error", err)
		return
	}
	if !ok {
		return
	}
	if err := s.Session.SignOut(ctx); err != nil {
		s.fail("Error", err)
		return
	}
	s.set(StateDone, nil)
}

func (s *ProfileScreen) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// uploadErrorDetails expands a storage JSON error body into its parts
func uploadErrorDetails(err error) string {
	details := err.Error()
	var body struct {
		StatusCode interface{} `json:"statusCode"`
		Error      string      `json:"error"`
		Message    string      `json:"message"`
	}
	if json.Unmarshal([]byte(details), &body) != nil {
		return details
	}
	return fmt.Sprintf("Status: %v\nError: %s\nMessage: %s", body.StatusCode, body.Error, body.Message)
}

func presence(header *string) string {
	if header != nil && *header != "" {
		return "present"
	}
	return "missing"
}

func orUnknown(value string) string {
	return util.FirstNonEmpty(value, "?")
}
