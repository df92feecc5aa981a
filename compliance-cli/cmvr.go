package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"minecomply/lib/models"
	"minecomply/lib/prompt"
	"minecomply/lib/screens"
	"strconv"
	"strings"
)

const cmvrHelp = `Commands:
  info <field> <value>        set report info (projectName, permitHolder, reportingPeriod,
                              reportDate, preparedBy, location)
  add                         add a blank condition
  import                      add the project's conditions from the server
  set <n> <field> <value>     set a condition field (conditionNo, requirement, status, remarks)
                              status: compliant, non-compliant, pending, n/a
  del <n>                     delete condition n
  remarks <text>              set the general remarks
  recs <text>                 set the recommendations
  attach <path> [name] [type] upload a supporting document
  show                        print the report
  submit                      submit the report
  quit                        leave without submitting`

func runCMVR(ctx context.Context, args []string) error {
	fs := newFlagSet("cmvr")
	projectID := fs.String("project", "", "project id")
	projectName := fs.String("name", "", "project name (looked up when empty)")
	yes := fs.Bool("yes", false, "answer yes to the submit confirmations")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *projectID == "" {
		return fmt.Errorf("-project is required")
	}
	if *projectName == "" {
		if result, err := complianceRepository.GetProjectConditions(ctx, *projectID); err == nil {
			*projectName = result.Project.Name
		}
	}

	screen := screens.NewCMVRScreen(*projectID, *projectName, complianceRepository, storageRepository, logger)
	confirmer := submitConfirmer(*yes)
	fmt.Printf("CMVR report for %s. Type 'help' for commands.\n", *projectName)

	for {
		line, err := terminal.ReadLine(ctx, "cmvr> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := dispatchCMVR(ctx, screen, confirmer, line)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		if done {
			return nil
		}
	}
}

// dispatchCMVR runs one form command. Condition numbers are resolved to
// IDs here, against the form as it is now. confirmer answers the submit prompts.
func dispatchCMVR(ctx context.Context, screen *screens.CMVRScreen, confirmer prompt.Confirmer, line string) (bool, error) {
	verb, rest := cutWord(line)
	form := screen.Form

	switch verb {
	case "":
		return false, nil
	case "help", "?":
		fmt.Println(cmvrHelp)
	case "info":
		field, value := cutWord(rest)
		return false, form.UpdateReportInfo(models.ReportInfoField(field), value)
	case "add":
		form.AddCondition()
		fmt.Printf("Condition %d added\n", len(form.Conditions()))
	case "import":
		return false, importConditions(ctx, screen)
	case "set":
		number, rest := cutWord(rest)
		field, value := cutWord(rest)
		id, err := conditionID(screen, number)
		if err != nil {
			return false, err
		}
		return false, form.UpdateCondition(id, models.ConditionField(field), value)
	case "del":
		id, err := conditionID(screen, rest)
		if err != nil {
			return false, err
		}
		if screen.DeleteCondition(ctx, id, terminal) {
			fmt.Println("Condition deleted")
		}
		return false, printNotice(screen)
	case "remarks":
		form.SetGeneralRemarks(rest)
	case "recs":
		form.SetRecommendations(rest)
	case "attach":
		source, rest := cutWord(rest)
		name, contentType := cutWord(rest)
		params, err := uploadParams(source, name, contentType)
		if err != nil {
			return false, err
		}
		screen.AttachImage(ctx, params)
		return false, printNotice(screen)
	case "show":
		printForm(form)
	case "submit":
		screen.Submit(ctx, confirmer)
		printNotice(screen)
		return screen.State() == screens.StateDone, nil
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", verb)
	}
	return false, nil
}

func submitConfirmer(yes bool) prompt.Confirmer {
	if yes {
		return prompt.Always
	}
	return terminal
}

func importConditions(ctx context.Context, screen *screens.CMVRScreen) error {
	result, err := complianceRepository.GetProjectConditions(ctx, screen.Form.ProjectID())
	if err != nil {
		return err
	}
	for _, condition := range result.Conditions {
		added := screen.Form.AddCondition()
		requirement := condition.Requirement
		if requirement == "" {
			requirement = condition.Title
		}
		if err := screen.Form.UpdateCondition(added.ID, models.ConditionFieldConditionNo, condition.ConditionNo); err != nil {
			return err
		}
		if err := screen.Form.UpdateCondition(added.ID, models.ConditionFieldRequirement, requirement); err != nil {
			return err
		}
	}
	printer.Printf("Imported %d condition(s)\n", len(result.Conditions))
	return nil
}

// conditionID maps a 1-based display number to the condition's ID
func conditionID(screen *screens.CMVRScreen, number string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return "", fmt.Errorf("condition number expected, got %q", number)
	}
	condition, ok := screen.Form.ConditionAt(n - 1)
	if !ok {
		return "", fmt.Errorf("no condition %d", n)
	}
	return condition.ID, nil
}

func cutWord(s string) (string, string) {
	word, rest, _ := strings.Cut(strings.TrimSpace(s), " ")
	return word, strings.TrimSpace(rest)
}
