package main

import (
	"fmt"
	"minecomply/lib/cmvr"
	"minecomply/lib/models"
	"minecomply/lib/screens"
	"minecomply/lib/util"
	"os"
	"strings"
	"text/tabwriter"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// printNotice shows the outcome of a screen action. It returns an error
// when the screen ended in StateError so one-shot commands exit non-zero.
func printNotice(status interface {
	State() screens.State
	Notice() *screens.Notice
}) error {
	notice := status.Notice()
	if notice != nil {
		fmt.Printf("\n%s\n%s\n", notice.Title, notice.Message)
	}
	if status.State() == screens.StateError {
		if notice != nil {
			return fmt.Errorf("%s", notice.Title)
		}
		return fmt.Errorf("action failed")
	}
	return nil
}

func printProjects(projects []models.Project) {
	table := newTable()
	fmt.Fprintln(table, "ID\tNAME\tORGANIZATION\tSUBMISSIONS\tCONDITIONS")
	for _, project := range projects {
		fmt.Fprintf(table, "%s\t%s\t%s\t%d\t%d\n",
			project.ID, project.Name, project.Organization.Name, project.Count.Submissions, project.Count.Conditions)
	}
	table.Flush()
	printer.Printf("%d project(s)\n", len(projects))
}

func printSubmissions(items []models.SubmissionListItem) {
	if len(items) == 0 {
		fmt.Println("No submissions found")
		return
	}
	table := newTable()
	fmt.Fprintln(table, "ID\tTITLE\tSTATUS\tCREATED\tEVIDENCE")
	for _, item := range items {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%d\n",
			item.ID, util.Truncate(item.Title, 40), item.Status.Label(), item.CreatedDate(), item.EvidenceCount)
	}
	table.Flush()
	printer.Printf("%d submission(s)\n", len(items))
}

func printConditions(conditions []models.Condition) {
	table := newTable()
	fmt.Fprintln(table, "ID\tNO\tTITLE\tREQUIREMENT")
	for _, condition := range conditions {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			condition.ID, condition.ConditionNo, util.Truncate(condition.Title, 30), util.Truncate(condition.Requirement, 50))
	}
	table.Flush()
	printer.Printf("%d condition(s)\n", len(conditions))
}

func printSubmissionHeader(submission *models.Submission) {
	item := submission.ToListItem()
	fmt.Printf("%s [%s]\n", item.Title, item.Status.Label())
	if submission.Summary != nil && *submission.Summary != "" {
		fmt.Println(*submission.Summary)
	}
	fmt.Printf("Created %s\n\n", item.CreatedDate())
}

func printRecords(records []models.Record) {
	table := newTable()
	fmt.Fprintln(table, "ID\tKIND\tSTATUS\tCREATED\tREMARKS")
	for _, record := range records {
		remarks := ""
		if record.Remarks != nil {
			remarks = *record.Remarks
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
			record.ID, record.Kind, record.Status, record.CreatedAt, util.Truncate(remarks, 50))
	}
	table.Flush()
	printer.Printf("%d record(s)\n", len(records))
}

func printForm(form *cmvr.Form) {
	info := form.ReportInfo()
	fmt.Println("\nReport Information")
	table := newTable()
	for _, field := range []models.ReportInfoField{
		models.ReportInfoProjectName, models.ReportInfoPermitHolder, models.ReportInfoReportingPeriod,
		models.ReportInfoReportDate, models.ReportInfoPreparedBy, models.ReportInfoLocation,
	} {
		value, _ := info.Get(field)
		required := ""
		for _, r := range models.RequiredReportInfoFields {
			if r == field {
				required = " *"
			}
		}
		fmt.Fprintf(table, "  %s%s\t%s\n", field, required, value)
	}
	table.Flush()

	fmt.Println("\nECC Conditions Compliance")
	conditions := form.Conditions()
	if len(conditions) == 0 {
		fmt.Println("  No conditions added yet. Use 'add' to add your first condition.")
	} else {
		table = newTable()
		for i, condition := range conditions {
			fmt.Fprintf(table, "  %d.\t%s\t[%s]\t%s\t%s\n",
				i+1, util.ConditionalString(condition.ConditionNo == "", "-", condition.ConditionNo),
				condition.Status.Display(), util.Truncate(condition.Requirement, 40), util.Truncate(condition.Remarks, 40))
		}
		table.Flush()
	}

	fmt.Println("\nGeneral Remarks")
	fmt.Println("  " + util.ConditionalString(form.GeneralRemarks() == "", "-", form.GeneralRemarks()))
	fmt.Println("\nRecommendations")
	fmt.Println("  " + util.ConditionalString(form.Recommendations() == "", "-", form.Recommendations()))
	fmt.Println("\nSupporting Documents")
	images := form.UploadedImages()
	if len(images) == 0 {
		fmt.Println("  -")
	}
	for _, path := range images {
		fmt.Println("  " + path)
	}
	fmt.Println(strings.Repeat("-", 40))
}
