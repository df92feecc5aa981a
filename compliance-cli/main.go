package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"minecomply/lib/api"
	"minecomply/lib/auth"
	"minecomply/lib/clients"
	"minecomply/lib/config"
	"minecomply/lib/data"
	"minecomply/lib/prompt"
	"minecomply/lib/util"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const serviceName = "minecomply-cli"

var (
	logger               *logrus.Logger
	cfg                  *config.Config
	ssmParams            map[string]string
	session              *auth.CognitoSession
	apiClient            *api.Client
	complianceRepository data.ComplianceRepository
	storageRepository    data.StorageRepository
	authDebugRepository  data.AuthDebugRepository
	terminal             *prompt.Terminal
	printer              *message.Printer
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string) error
}

var commands = []command{
	{"login", "sign in with username and password", runLogin},
	{"logout", "sign out and forget the stored session", runLogout},
	{"dashboard", "show the signed-in user, organizations and projects", runDashboard},
	{"projects", "list projects", runProjects},
	{"submissions", "list submissions of a project [-project id] [-status s]", runSubmissions},
	{"new-submission", "create a submission [-project id]", runNewSubmission},
	{"conditions", "list the conditions of a project -project id", runConditions},
	{"records", "list the records of a submission -submission id", runRecords},
	{"upload", "upload a file -file path [-name n] [-type t] [-upsert]", runUpload},
	{"download-url", "create a temporary download URL -path p [-expires seconds]", runDownloadURL},
	{"token-info", "show the claims of the current access token", runTokenInfo},
	{"auth-test", "check that the API accepts the current token", runAuthTest},
	{"sample-upload", "upload a generated text file", runSampleUpload},
	{"cmvr", "fill in and submit a CMVR report -project id [-name n]", runCMVR},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 || os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help" {
		usage()
		os.Exit(2)
	}
	cmd := findCommand(os.Args[1])
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	shutdown, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = cmd.run(ctx, os.Args[2:])
	if shutdownErr := shutdown(context.Background()); shutdownErr != nil {
		logger.WithError(shutdownErr).Warn("Failed to flush traces")
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func findCommand(name string) *command {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i]
		}
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: compliance-cli <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-15s %s\n", cmd.name, cmd.summary)
	}
}

// setup wires configuration, logging, AWS clients and repositories
func setup(ctx context.Context) (func(context.Context) error, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return nil, err
	}

	logger = setupLogger(cfg.IsLocal)
	util.SetLogLevel(logger, cfg.LogLevel)
	printer = message.NewPrinter(language.English)
	terminal = prompt.NewTerminal(os.Stdin, os.Stdout)

	if cfg.UseSSM {
		ssmParams, err = loadSSMParameters(ctx)
		if err != nil {
			return nil, err
		}
	}

	baseURL := config.ResolveAPIBaseURL(cfg, ssmParams)
	logger.WithFields(logrus.Fields{
		"base_url":  baseURL,
		"use_ssm":   cfg.UseSSM,
		"operation": "setup",
	}).Debug("Resolved API base URL")

	session, err = setupSession(ctx)
	if err != nil {
		return nil, err
	}

	shutdown, err := clients.SetupTracing(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return nil, err
	}

	apiClient = api.NewClient(baseURL, &http.Client{Timeout: cfg.HTTPTimeout}, session, logger)
	complianceRepository = data.NewComplianceRepository(apiClient, logger)
	storageRepository = data.NewStorageRepository(apiClient, logger)
	authDebugRepository = data.NewAuthDebugRepository(apiClient, logger)
	return shutdown, nil
}

func setupLogger(isLocal bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if isLocal {
		log.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log
}

func loadSSMParameters(ctx context.Context) (map[string]string, error) {
	ssmClient, err := clients.NewSSMClient(ctx, cfg.IsLocal, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSM client: %w", err)
	}
	ssmRepository := &data.SSMDao{
		SSM:    ssmClient,
		Logger: logger,
	}
	params, err := ssmRepository.GetParameters(ctx)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "setup",
			"error":     err.Error(),
		}).Error("Error while getting SSM params from parameter store")
		return nil, fmt.Errorf("failed to load SSM parameters: %w", err)
	}
	return params, nil
}

func setupSession(ctx context.Context) (*auth.CognitoSession, error) {
	path := cfg.SessionFile
	if path == "" {
		var err error
		path, err = auth.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}

	cognitoClient, err := clients.NewCognitoClient(ctx, cfg.IsLocal, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cognito client: %w", err)
	}
	return &auth.CognitoSession{
		Cognito:      cognitoClient,
		ClientID:     config.ResolveCognitoClientID(cfg, ssmParams),
		ClientSecret: cfg.CognitoClientSecret,
		Store:        &auth.FileSessionStore{Path: path},
		Logger:       logger,
	}, nil
}
