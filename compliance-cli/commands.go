package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"minecomply/lib/auth"
	"minecomply/lib/models"
	"minecomply/lib/screens"
	"path/filepath"
	"strings"
	"time"
)

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func runLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("username", "", "Cognito username or email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *username == "" {
		*username, err = terminal.ReadLine(ctx, "Username: ")
		if err != nil {
			return err
		}
	}
	password, err := terminal.ReadLine(ctx, "Password: ")
	if err != nil {
		return err
	}

	signedIn, err := session.SignIn(ctx, strings.TrimSpace(*username), password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (session valid until %s)\n", signedIn.Username, signedIn.ExpiresAt.Local().Format(time.Kitchen))
	return nil
}

func runLogout(ctx context.Context, args []string) error {
	screen := newProfileScreen()
	screen.SignOut(ctx, terminal)
	if screen.State() == screens.StateDone {
		fmt.Println("Signed out")
	}
	return printNotice(screen)
}

func runDashboard(ctx context.Context, args []string) error {
	screen := &screens.DashboardScreen{Compliance: complianceRepository, Logger: logger}
	screen.Load(ctx)
	if err := printNotice(screen); err != nil {
		return err
	}

	me := screen.Me()
	name := "?"
	if me.User.DisplayName != nil {
		name = *me.User.DisplayName
	} else if me.User.Email != nil {
		name = *me.User.Email
	}
	fmt.Printf("Welcome, %s\n\n", name)

	for _, organization := range me.Organizations {
		fmt.Printf("Organization: %s (%s)\n", organization.Name, organization.Type)
	}
	for _, assignment := range me.Assignments {
		fmt.Printf("Assigned to %s as %s\n", assignment.Project.Name, assignment.Role)
	}
	fmt.Println()
	printProjects(me.Projects)
	printer.Printf("%d submission(s) across all projects\n", screen.TotalSubmissions())
	return nil
}

func runProjects(ctx context.Context, args []string) error {
	list, err := complianceRepository.ListProjects(ctx)
	if err != nil {
		return err
	}
	printProjects(list.Projects)
	return nil
}

func runSubmissions(ctx context.Context, args []string) error {
	fs := newFlagSet("submissions")
	projectID := fs.String("project", "", "project id (defaults to the first project)")
	status := fs.String("status", "all", "filter: all, draft, submitted, under_review, approved, rejected, requires_changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := models.SubmissionStatus("")
	if *status != "all" {
		parsed, err := models.ParseSubmissionStatus(*status)
		if err != nil {
			return err
		}
		filter = parsed
	}

	screen, err := loadSubmissionsScreen(ctx, *projectID)
	if err != nil {
		return err
	}
	screen.SetFilter(filter)

	if project := screen.SelectedProject(); project != nil {
		fmt.Printf("%s (%s)\n\n", project.Name, project.Organization.Name)
	}
	printSubmissions(screen.Visible())
	return nil
}

func runNewSubmission(ctx context.Context, args []string) error {
	fs := newFlagSet("new-submission")
	projectID := fs.String("project", "", "project id (defaults to the first project)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	screen, err := loadSubmissionsScreen(ctx, *projectID)
	if err != nil {
		return err
	}
	submission := screen.NewSubmission(ctx, terminal)
	if err := printNotice(screen); err != nil {
		return err
	}
	if submission != nil {
		fmt.Printf("Submission %s created\n\n", submission.ID)
		printSubmissions(screen.Visible())
	}
	return nil
}

func loadSubmissionsScreen(ctx context.Context, projectID string) (*screens.SubmissionsScreen, error) {
	screen := &screens.SubmissionsScreen{Compliance: complianceRepository, Logger: logger}
	screen.Load(ctx)
	if err := printNotice(screen); err != nil {
		return nil, err
	}
	if projectID != "" && projectID != screen.SelectedProjectID() {
		screen.SelectProject(ctx, projectID)
		if err := printNotice(screen); err != nil {
			return nil, err
		}
	}
	return screen, nil
}

func runConditions(ctx context.Context, args []string) error {
	fs := newFlagSet("conditions")
	projectID := fs.String("project", "", "project id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *projectID == "" {
		return fmt.Errorf("-project is required")
	}

	result, err := complianceRepository.GetProjectConditions(ctx, *projectID)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n\n", result.Project.Name)
	printConditions(result.Conditions)
	return nil
}

func runRecords(ctx context.Context, args []string) error {
	fs := newFlagSet("records")
	submissionID := fs.String("submission", "", "submission id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *submissionID == "" {
		return fmt.Errorf("-submission is required")
	}

	submission, err := complianceRepository.GetSubmission(ctx, *submissionID)
	if err != nil {
		return err
	}
	result, err := complianceRepository.ListSubmissionRecords(ctx, submission.ID)
	if err != nil {
		return err
	}
	printSubmissionHeader(submission)
	printRecords(result.Records)
	return nil
}

func runUpload(ctx context.Context, args []string) error {
	fs := newFlagSet("upload")
	file := fs.String("file", "", "local path, file:// or data: URI")
	name := fs.String("name", "", "stored file name (defaults to the base name of -file)")
	contentType := fs.String("type", "", "content type (guessed from the extension)")
	upsert := fs.Bool("upsert", false, "overwrite an existing object")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params, err := uploadParams(*file, *name, *contentType)
	if err != nil {
		return err
	}
	if *upsert {
		params.Upsert = upsert
	}

	result, err := storageRepository.UploadFromSource(ctx, params)
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s\nPath: %s\n", params.FileName, result.Path)
	return nil
}

// uploadParams fills in the stored name and content type for a source
func uploadParams(source, name, contentType string) (models.UploadFromSourceParams, error) {
	if source == "" {
		return models.UploadFromSourceParams{}, fmt.Errorf("a file is required")
	}
	if name == "" {
		if strings.HasPrefix(source, "data:") {
			name = fmt.Sprintf("upload-%d", time.Now().UnixMilli())
		} else {
			name = filepath.Base(strings.TrimPrefix(source, "file://"))
		}
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(name))
	}
	return models.UploadFromSourceParams{
		SourceURI:   source,
		FileName:    name,
		ContentType: contentType,
	}, nil
}

func runDownloadURL(ctx context.Context, args []string) error {
	fs := newFlagSet("download-url")
	path := fs.String("path", "", "storage path returned by an upload")
	expires := fs.Int("expires", 0, "lifetime in seconds (server default when 0)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	var expiresIn *int
	if *expires > 0 {
		expiresIn = expires
	}
	result, err := storageRepository.CreateSignedDownloadURL(ctx, *path, expiresIn)
	if err != nil {
		return err
	}
	fmt.Println(result.URL)
	return nil
}

func runTokenInfo(ctx context.Context, args []string) error {
	current, err := session.Current()
	if err != nil {
		return err
	}
	if current != nil {
		if claims, err := auth.ParseTokenClaims(current.AccessToken); err == nil {
			fmt.Println("Local token")
			table := newTable()
			fmt.Fprintf(table, "  sub\t%s\n", claims.Subject)
			fmt.Fprintf(table, "  username\t%s\n", claims.Username)
			fmt.Fprintf(table, "  client_id\t%s\n", claims.ClientID)
			fmt.Fprintf(table, "  token_use\t%s\n", claims.TokenUse)
			fmt.Fprintf(table, "  expires\t%s (%s)\n", claims.ExpiresAt.Local().Format(time.RFC1123), expiryState(claims, time.Now()))
			table.Flush()
		}
	}

	screen := newProfileScreen()
	screen.TokenInfo(ctx)
	return printNotice(screen)
}

// expiryState describes a token's lifetime relative to the refresh window
func expiryState(claims *auth.Claims, now time.Time) string {
	switch {
	case claims.ExpiresAt.IsZero():
		return "no expiry"
	case claims.ExpiresWithin(now, 0):
		return "expired"
	case claims.ExpiresWithin(now, auth.DefaultRefreshSkew):
		return "refresh due"
	}
	return "valid"
}

func runAuthTest(ctx context.Context, args []string) error {
	screen := newProfileScreen()
	screen.TestAPIAuth(ctx)
	return printNotice(screen)
}

func runSampleUpload(ctx context.Context, args []string) error {
	screen := newProfileScreen()
	screen.SampleUpload(ctx)
	return printNotice(screen)
}

// newProfileScreen identifies the user from the stored token when possible
func newProfileScreen() *screens.ProfileScreen {
	screen := &screens.ProfileScreen{
		AuthDebug: authDebugRepository,
		Storage:   storageRepository,
		Session:   session,
		Logger:    logger,
	}
	if current, err := session.Current(); err == nil && current != nil {
		if claims, err := auth.ParseTokenClaims(current.IDToken); err == nil {
			logger.WithField("claims", claims.ToJSON()).Debug("Parsed ID token")
			screen.UserID = claims.Subject
			screen.UserEmail = claims.Email
		}
	}
	return screen
}
