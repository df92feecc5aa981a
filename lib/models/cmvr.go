package models

import "fmt"

// ReportInfo is the header block of a Compliance Monitoring Verification Report
type ReportInfo struct {
	ProjectName     string `json:"projectName"`
	PermitHolder    string `json:"permitHolder"`
	ReportingPeriod string `json:"reportingPeriod"`
	ReportDate      string `json:"reportDate"`
	PreparedBy      string `json:"preparedBy"`
	Location        string `json:"location"`
}

// ReportInfoField names one field of ReportInfo for keyed updates
type ReportInfoField string

// Report info field constants
const (
	ReportInfoProjectName     ReportInfoField = "projectName"
	ReportInfoPermitHolder    ReportInfoField = "permitHolder"
	ReportInfoReportingPeriod ReportInfoField = "reportingPeriod"
	ReportInfoReportDate      ReportInfoField = "reportDate"
	ReportInfoPreparedBy      ReportInfoField = "preparedBy"
	ReportInfoLocation        ReportInfoField = "location"
)

// RequiredReportInfoFields must be non-empty before a report can be submitted
var RequiredReportInfoFields = []ReportInfoField{
	ReportInfoPermitHolder,
	ReportInfoReportingPeriod,
	ReportInfoReportDate,
}

// Get returns the value of field
func (r ReportInfo) Get(field ReportInfoField) (string, error) {
	switch field {
	case ReportInfoProjectName:
		return r.ProjectName, nil
	case ReportInfoPermitHolder:
		return r.PermitHolder, nil
	case ReportInfoReportingPeriod:
		return r.ReportingPeriod, nil
	case ReportInfoReportDate:
		return r.ReportDate, nil
	case ReportInfoPreparedBy:
		return r.PreparedBy, nil
	case ReportInfoLocation:
		return r.Location, nil
	default:
		return "", fmt.Errorf("unknown report info field: %q", field)
	}
}

// With returns a copy of r with field replaced by value
func (r ReportInfo) With(field ReportInfoField, value string) (ReportInfo, error) {
	switch field {
	case ReportInfoProjectName:
		r.ProjectName = value
	case ReportInfoPermitHolder:
		r.PermitHolder = value
	case ReportInfoReportingPeriod:
		r.ReportingPeriod = value
	case ReportInfoReportDate:
		r.ReportDate = value
	case ReportInfoPreparedBy:
		r.PreparedBy = value
	case ReportInfoLocation:
		r.Location = value
	default:
		return r, fmt.Errorf("unknown report info field: %q", field)
	}
	return r, nil
}

// ConditionStatus is the compliance verdict of one condition
type ConditionStatus string

// Condition status constants. ConditionStatusUnset means the user has not chosen yet.
const (
	ConditionStatusUnset         ConditionStatus = ""
	ConditionStatusCompliant     ConditionStatus = "compliant"
	ConditionStatusNonCompliant  ConditionStatus = "non-compliant"
	ConditionStatusPending       ConditionStatus = "pending"
	ConditionStatusNotApplicable ConditionStatus = "n/a"
)

// Valid reports whether s is a known status, unset included
func (s ConditionStatus) Valid() bool {
	switch s {
	case ConditionStatusUnset, ConditionStatusCompliant, ConditionStatusNonCompliant,
		ConditionStatusPending, ConditionStatusNotApplicable:
		return true
	}
	return false
}

// Display returns the badge text for s
func (s ConditionStatus) Display() string {
	if s == ConditionStatusUnset {
		return "NOT SET"
	}
	return string(s)
}

// ConditionField names one editable field of ComplianceCondition
type ConditionField string

// Condition field constants
const (
	ConditionFieldConditionNo ConditionField = "conditionNo"
	ConditionFieldRequirement ConditionField = "requirement"
	ConditionFieldStatus      ConditionField = "status"
	ConditionFieldRemarks     ConditionField = "remarks"
)

// ComplianceCondition is one requirement line item of a CMVR
type ComplianceCondition struct {
	ID          string          `json:"id"`
	ConditionNo string          `json:"conditionNo"`
	Requirement string          `json:"requirement"`
	Status      ConditionStatus `json:"status"`
	Remarks     string          `json:"remarks"`
}

// Incomplete reports whether the condition still lacks a status or remarks
func (c ComplianceCondition) Incomplete() bool {
	return c.Status == ConditionStatusUnset || c.Remarks == ""
}

// With returns a copy of c with field replaced by value
func (c ComplianceCondition) With(field ConditionField, value string) (ComplianceCondition, error) {
	switch field {
	case ConditionFieldConditionNo:
		c.ConditionNo = value
	case ConditionFieldRequirement:
		c.Requirement = value
	case ConditionFieldStatus:
		status := ConditionStatus(value)
		if !status.Valid() {
			return c, fmt.Errorf("unknown condition status: %q", value)
		}
		c.Status = status
	case ConditionFieldRemarks:
		c.Remarks = value
	default:
		return c, fmt.Errorf("unknown condition field: %q", field)
	}
	return c, nil
}

// Draft is a snapshot of the whole CMVR form
type Draft struct {
	ProjectID       string                `json:"projectId,omitempty"`
	SubmissionID    string                `json:"submissionId,omitempty"`
	ReportInfo      ReportInfo            `json:"reportInfo"`
	Conditions      []ComplianceCondition `json:"conditions"`
	GeneralRemarks  string                `json:"generalRemarks"`
	Recommendations string                `json:"recommendations"`
	UploadedImages  []string              `json:"uploadedImages"`
}
