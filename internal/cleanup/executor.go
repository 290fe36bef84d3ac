/*
Copyright (c) 2025 Mike Lane

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package cleanup

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikelane/gitlab-janitor/internal/expiry"
	"github.com/mikelane/gitlab-janitor/internal/gitlab"
)

// Executor deletes expired job artifacts for one project or for every
// accessible project. In dry-run mode it only reports what it would delete.
type Executor struct {
	client gitlab.Client
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewExecutor creates a new deletion executor.
//
// Parameters:
//   - client: GitLab client for listing projects/jobs and deleting artifacts
//   - log: logger for per-job and per-project outcomes
//
// Returns a configured Executor ready to run.
func NewExecutor(client gitlab.Client, log logrus.FieldLogger) *Executor {
	return &Executor{
		client: client,
		log:    log,
		now:    time.Now,
	}
}

// Run deletes (or, in dry-run mode, reports) expired job artifacts for a
// single project.
//
// The following rules apply:
//   - A failure to list the project's jobs is systemic: it is logged and Run
//     returns false without touching any artifacts.
//   - Each expired job is handled independently. A failed delete is logged
//     and the remaining jobs are still attempted; individual delete failures
//     never flip the overall result.
//   - Jobs the expiration policy cannot decide on are skipped.
//
// Returns true unless the job listing itself failed.
func (e *Executor) Run(ctx context.Context, projectID int, dryRun bool) bool {
	log := e.log.WithFields(logrus.Fields{
		"project_id": projectID,
		"dry_run":    dryRun,
	})

	jobs, err := e.client.ListProjectJobs(ctx, projectID)
	if err != nil {
		log.WithError(err).WithField("status", gitlab.RemoteStatus(err)).
			Error("failed to list jobs")
		return false
	}

	now := e.now()
	expired := 0
	for _, job := range jobs {
		if !expiry.IsExpired(job, now) {
			continue
		}
		expired++

		jobLog := log.WithFields(logrus.Fields{
			"job_id":   job.ID,
			"job_name": job.Name,
		})

		if dryRun {
			jobLog.Info("would delete expired job artifacts")
			continue
		}

		if err := e.client.DeleteJobArtifacts(ctx, projectID, job.ID); err != nil {
			jobLog.WithError(err).WithField("status", gitlab.RemoteStatus(err)).
				Warn("failed to delete job artifacts")
			continue
		}
		jobLog.Info("deleted expired job artifacts")
	}

	log.WithFields(logrus.Fields{
		"jobs_total":   len(jobs),
		"jobs_expired": expired,
	}).Info("completed artifact cleanup for project")

	return true
}

// RunAll runs the cleanup for every accessible project, sequentially. A
// single project's systemic failure is logged and the remaining projects are
// still processed.
//
// Returns false only if the project listing itself fails.
func (e *Executor) RunAll(ctx context.Context, dryRun bool) bool {
	projects, err := e.client.ListProjects(ctx)
	if err != nil {
		e.log.WithError(err).WithField("status", gitlab.RemoteStatus(err)).
			Error("failed to list projects")
		return false
	}

	for _, project := range projects {
		if !e.Run(ctx, project.ID, dryRun) {
			e.log.WithFields(logrus.Fields{
				"project_id":   project.ID,
				"project_name": project.Name,
			}).Warn("skipping project after job listing failure")
		}
	}

	return true
}
