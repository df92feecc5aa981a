package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SubmissionStatus is the lifecycle state of a compliance submission
type SubmissionStatus string

// Submission Status constants
const (
	SubmissionStatusDraft           SubmissionStatus = "draft"
	SubmissionStatusSubmitted       SubmissionStatus = "submitted"
	SubmissionStatusUnderReview     SubmissionStatus = "under_review"
	SubmissionStatusApproved        SubmissionStatus = "approved"
	SubmissionStatusRejected        SubmissionStatus = "rejected"
	SubmissionStatusRequiresChanges SubmissionStatus = "requires_changes"
)

// SubmissionStatuses lists every status in lifecycle order
var SubmissionStatuses = []SubmissionStatus{
	SubmissionStatusDraft,
	SubmissionStatusSubmitted,
	SubmissionStatusUnderReview,
	SubmissionStatusApproved,
	SubmissionStatusRejected,
	SubmissionStatusRequiresChanges,
}

// Valid reports whether s is one of the known statuses
func (s SubmissionStatus) Valid() bool {
	for _, known := range SubmissionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label renders the status for people, e.g. "under_review" -> "Under Review"
func (s SubmissionStatus) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// ParseSubmissionStatus lower-cases and validates a status string
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	status := SubmissionStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown submission status: %q", value)
	}
	return status, nil
}

// UserSummary is the authenticated user as seen by the compliance API
type UserSummary struct {
	ID          string  `json:"id"`
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
}

// Organization represents an organization the user belongs to
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// OrganizationRef is the short organization form embedded in projects
type OrganizationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectCount carries the aggregate counters returned with a project
type ProjectCount struct {
	Submissions int `json:"submissions"`
	Conditions  int `json:"conditions"`
}

// Project represents a mining project the user can report on
type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Organization OrganizationRef `json:"organization"`
	Count        ProjectCount    `json:"_count"`
}

// Assignment links the user to a project with a role
type Assignment struct {
	ID      string  `json:"id"`
	Role    string  `json:"role"`
	Project Project `json:"project"`
}

// Me is the response of GET /compliance/me
type Me struct {
	User          UserSummary    `json:"user"`
	Organizations []Organization `json:"organizations"`
	Assignments   []Assignment   `json:"assignments"`
	Projects      []Project      `json:"projects"`
}

// ProjectList is the response of GET /compliance/projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// Condition is an environmental compliance condition attached to a project
type Condition struct {
	ID          string  `json:"id"`
	ConditionNo string  `json:"conditionNo,omitempty"`
	Title       string  `json:"title,omitempty"`
	Requirement string  `json:"requirement,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// ProjectConditions is the response of GET /compliance/projects/{id}/conditions
type ProjectConditions struct {
	Project    Project     `json:"project"`
	Conditions []Condition `json:"conditions"`
}

// SubmissionCount carries the aggregate counters returned with a submission
type SubmissionCount struct {
	Evidences int `json:"evidences"`
	Records   int `json:"records"`
}

// Submission is a compliance report tracked through its status lifecycle
type Submission struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"projectId,omitempty"`
	Title         string          `json:"title"`
	Status        string          `json:"status"`
	Summary       *string         `json:"summary,omitempty"`
	ReportingFrom *string         `json:"reportingFrom,omitempty"`
	ReportingTo   *string         `json:"reportingTo,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	Count         SubmissionCount `json:"_count"`
}

// SubmissionListItem is the normalized form shown in submission lists
type SubmissionListItem struct {
	ID            string
	Title         string
	Status        SubmissionStatus
	Summary       string
	CreatedAt     string
	EvidenceCount int
}

// ToListItem normalizes the wire submission: missing titles become
// "Untitled Submission" and unknown statuses fall back to draft.
func (s Submission) ToListItem() SubmissionListItem {
	title := s.Title
	if title == "" {
		title = "Untitled Submission"
	}
	status, err := ParseSubmissionStatus(s.Status)
	if err != nil {
		status = SubmissionStatusDraft
	}
	summary := ""
	if s.Summary != nil {
		summary = *s.Summary
	}
	return SubmissionListItem{
		ID:            s.ID,
		Title:         title,
		Status:        status,
		Summary:       summary,
		CreatedAt:     s.CreatedAt,
		EvidenceCount: s.Count.Evidences,
	}
}

// CreatedDate formats CreatedAt as "Jan 2, 2006"; unparseable values are returned as-is.
func (item SubmissionListItem) CreatedDate() string {
	t, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return item.CreatedAt
	}
	return t.Format("Jan 2, 2006")
}

// ProjectSubmissions is the response of GET /compliance/projects/{id}/submissions
type ProjectSubmissions struct {
	Project     Project      `json:"project"`
	Submissions []Submission `json:"submissions"`
}

// CreateSubmissionRequest is the body of POST /compliance/projects/{id}/submissions
type CreateSubmissionRequest struct {
	Title         string  `json:"title"`
	Summary       *string `json:"summary,omitempty"`
	ReportingFrom *string `json:"reportingFrom,omitempty"`
	ReportingTo   *string `json:"reportingTo,omitempty"`
}

// Record is a compliance record (evidence line) within a submission
type Record struct {
	ID           string          `json:"id"`
	SubmissionID string          `json:"submissionId,omitempty"`
	Kind         string          `json:"kind,omitempty"`
	Status       string          `json:"status,omitempty"`
	Remarks      *string         `json:"remarks,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	CreatedAt    string          `json:"createdAt,omitempty"`
}

// SubmissionRecords is the response of GET /compliance/submissions/{id}/records
type SubmissionRecords struct {
	Submission Submission `json:"submission"`
	Records    []Record   `json:"records"`
}

// Record kinds sent by the CMVR form
const (
	RecordKindCondition     = "condition"
	RecordKindReportSummary = "report_summary"
)

// ComplianceRecordRequest is the body of POST /compliance/submissions/{id}/records
type ComplianceRecordRequest struct {
	Kind            string      `json:"kind"`
	ConditionNo     string      `json:"conditionNo,omitempty"`
	Requirement     string      `json:"requirement,omitempty"`
	Status          string      `json:"status,omitempty"`
	Remarks         string      `json:"remarks,omitempty"`
	ReportInfo      *ReportInfo `json:"reportInfo,omitempty"`
	Recommendations string      `json:"recommendations,omitempty"`
	Attachments     []string    `json:"attachments,omitempty"`
}
