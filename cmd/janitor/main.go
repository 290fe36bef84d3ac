// MIT License
//
// Copyright (c) 2025 Mike Lane
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// The janitor command performs housekeeping against a GitLab instance: it
// maintains an incrementally-updated summary of per-project build artifact
// sizes, and can delete expired job artifacts for one project or fleet-wide.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mikelane/gitlab-janitor/internal/cleanup"
	"github.com/mikelane/gitlab-janitor/internal/config"
	"github.com/mikelane/gitlab-janitor/internal/gitlab"
	"github.com/mikelane/gitlab-janitor/internal/store"
	"github.com/mikelane/gitlab-janitor/internal/summary"
)

type options struct {
	ProjectID       *int   `long:"project-id" description:"Limit the summary run to a single project" value-name:"ID"`
	ForceUpdate     bool   `long:"force-update" description:"Re-fetch statistics even when a valid summary entry exists"`
	DeleteProjectID string `long:"delete-project-id" description:"Delete expired job artifacts for the given project, or 'all' for every project" value-name:"ID|all"`
	DryRun          bool   `long:"dry-run" description:"Report intended deletions without performing them"`
	Debug           bool   `long:"debug" description:"Enable debug logging"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logrus.New()

	// Load environment variables from a .env file, if one exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("could not load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}
	configureLogging(log, cfg.LogLevel, opts.Debug)

	client, err := gitlab.NewClient(cfg.Token, cfg.BaseURL)
	if err != nil {
		log.WithError(err).Error("failed to create GitLab client")
		os.Exit(1)
	}

	ctx := context.Background()

	if opts.DeleteProjectID != "" {
		os.Exit(runCleanup(ctx, client, log, opts))
	}
	os.Exit(runSummary(ctx, client, log, cfg, opts))
}

// runCleanup handles deletion mode: one project, or "all" for the fleet.
func runCleanup(ctx context.Context, client gitlab.Client, log *logrus.Logger, opts options) int {
	executor := cleanup.NewExecutor(client, log)

	if opts.DeleteProjectID == "all" {
		if !executor.RunAll(ctx, opts.DryRun) {
			return 1
		}
		return 0
	}

	projectID, err := strconv.Atoi(opts.DeleteProjectID)
	if err != nil {
		log.WithField("value", opts.DeleteProjectID).
			Error("--delete-project-id must be a project ID or 'all'")
		return 1
	}

	if !executor.Run(ctx, projectID, opts.DryRun) {
		return 1
	}
	return 0
}

// runSummary handles summary mode: reconcile statistics into the persisted
// summary collection and report the results.
func runSummary(ctx context.Context, client gitlab.Client, log *logrus.Logger, cfg *config.Config, opts options) int {
	fileStore := store.NewFileStore(cfg.SummaryFile, cfg.SnapshotFile, log)

	existing, err := fileStore.LoadSummary()
	if err != nil {
		log.WithError(err).Error("failed to load summary")
		return 1
	}

	reconciler := summary.NewReconciler(client, fileStore, log)
	entries, err := reconciler.Reconcile(ctx, existing, summary.Options{
		ForceUpdate: opts.ForceUpdate,
		ProjectID:   opts.ProjectID,
	})
	if err != nil {
		log.WithError(err).Error("reconciliation failed")
		return 1
	}

	reconciler.Report(entries)
	return 0
}

func configureLogging(log *logrus.Logger, level string, debug bool) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	if debug {
		parsed = logrus.DebugLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
