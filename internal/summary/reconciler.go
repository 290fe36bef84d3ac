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

package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikelane/gitlab-janitor/internal/cost"
	"github.com/mikelane/gitlab-janitor/internal/gitlab"
)

// ErrArtifactsSizeUnavailable is recorded on summary entries whose project
// statistics could not be obtained.
const ErrArtifactsSizeUnavailable = "Build artifacts size not available in project statistics."

// Options controls a reconciliation run.
type Options struct {
	// ForceUpdate disables the skip-if-present cache check, re-fetching
	// statistics for every project.
	ForceUpdate bool
	// ProjectID, when set, limits the run to a single project. A fetch
	// failure for that project is fatal since there is no fallback set.
	ProjectID *int
}

// Reconciler merges freshly fetched per-project statistics into a persisted
// summary collection. It persists after every project so an interrupted run
// loses at most one project's work and can be resumed where it left off.
type Reconciler struct {
	client gitlab.Client
	store  Store
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewReconciler creates a new statistics reconciler.
func NewReconciler(client gitlab.Client, store Store, log logrus.FieldLogger) *Reconciler {
	return &Reconciler{
		client: client,
		store:  store,
		log:    log,
		now:    time.Now,
	}
}

// workItem pairs the raw project record used for the snapshot with the
// cached entry to reuse, when the freshness check allowed a skip.
type workItem struct {
	project *gitlab.Project
	cached  *Entry
}

// Reconcile runs one reconciliation pass over the existing summary and
// returns the updated collection.
//
// With Options.ProjectID set, only that project is fetched (with statistics)
// and upserted; a fetch failure is returned as an error. Otherwise the full
// project list is walked: projects with a valid cached entry are skipped
// unless ForceUpdate is set, the rest are fetched with statistics, and a
// fetch failure for an individual project synthesizes an errored entry
// instead of aborting the run. The summary collection is persisted after
// every upsert.
func (r *Reconciler) Reconcile(ctx context.Context, existing []Entry, opts Options) ([]Entry, error) {
	entries := make([]Entry, len(existing))
	copy(entries, existing)

	if opts.ProjectID != nil {
		return r.reconcileTarget(ctx, entries, *opts.ProjectID)
	}

	projects, err := r.client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	r.log.WithField("projects", len(projects)).Info("fetched project list")

	items := make([]workItem, 0, len(projects))
	records := make([]*gitlab.Project, 0, len(projects))
	for _, project := range projects {
		item := r.resolve(ctx, entries, project, opts.ForceUpdate)
		items = append(items, item)
		records = append(records, item.project)
	}

	// Raw snapshot is overwritten wholesale once the full set is assembled.
	if err := r.store.SaveSnapshot(records); err != nil {
		return entries, fmt.Errorf("failed to persist raw statistics snapshot: %w", err)
	}

	for _, item := range items {
		var entry Entry
		if item.cached != nil {
			entry = *item.cached
		} else {
			entry = r.buildEntry(item.project)
		}

		entries = Upsert(entries, entry)
		if err := r.store.SaveSummary(entries); err != nil {
			return entries, fmt.Errorf("failed to persist summary: %w", err)
		}

		r.log.WithFields(logrus.Fields{
			"project_id":   entry.ProjectID,
			"project_name": entry.ProjectName,
			"size_mb":      entry.BuildArtifactsSizeMB,
			"reused":       item.cached != nil,
		}).Debug("reconciled project")
	}

	return entries, nil
}

// reconcileTarget handles the single-project mode. There is no fallback set
// of projects, so the fetch failure is fatal for the run.
func (r *Reconciler) reconcileTarget(ctx context.Context, entries []Entry, projectID int) ([]Entry, error) {
	project, err := r.client.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch target project %d: %w", projectID, err)
	}

	entries = Upsert(entries, r.buildEntry(project))
	if err := r.store.SaveSummary(entries); err != nil {
		return entries, fmt.Errorf("failed to persist summary: %w", err)
	}

	return entries, nil
}

// resolve decides, for one listed project, between reusing the cached entry
// and fetching fresh statistics. A fetch failure is downgraded to an errored
// record so the rest of the fleet still reconciles.
func (r *Reconciler) resolve(ctx context.Context, entries []Entry, project *gitlab.Project, force bool) workItem {
	if cached := validCachedEntry(entries, project.ID); cached != nil && !force {
		// Reuse the prior entry verbatim; the snapshot record keeps the
		// cached statistics so it stays complete across skipped projects.
		record := &gitlab.Project{
			ID:                project.ID,
			Name:              project.Name,
			PathWithNamespace: project.PathWithNamespace,
			Statistics:        cached.Statistics,
		}
		return workItem{project: record, cached: cached}
	}

	full, err := r.client.GetProject(ctx, project.ID)
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"project_id": project.ID,
			"status":     gitlab.RemoteStatus(err),
		}).Warn("failed to fetch project statistics")

		return workItem{project: &gitlab.Project{
			ID:    project.ID,
			Name:  project.Name,
			Error: fmt.Sprintf("Failed to fetch project statistics: %v", err),
		}}
	}

	return workItem{project: full}
}

// validCachedEntry is the freshness predicate for the skip-if-present check:
// an entry can be reused when it exists, recorded no error, and carries
// statistics.
func validCachedEntry(entries []Entry, projectID int) *Entry {
	for i := range entries {
		entry := &entries[i]
		if entry.ProjectID == projectID && entry.Error == "" && entry.Statistics != nil {
			return entry
		}
	}
	return nil
}

// buildEntry derives a summary entry from an enriched project record.
func (r *Reconciler) buildEntry(project *gitlab.Project) Entry {
	entry := Entry{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Statistics:  project.Statistics,
		Error:       project.Error,
		Timestamp:   r.now(),
	}

	if project.Statistics != nil {
		entry.BuildArtifactsSizeBytes = project.Statistics.JobArtifactsSize
	} else {
		entry.Error = ErrArtifactsSizeUnavailable
	}
	entry.BuildArtifactsSizeMB = Megabytes(entry.BuildArtifactsSizeBytes)

	return entry
}

// Report logs every entry, the ten largest by build artifact size, and the
// estimated monthly storage cost of the fleet's artifacts. Nothing is
// persisted here.
func (r *Reconciler) Report(entries []Entry) {
	var totalBytes int64
	for _, entry := range entries {
		totalBytes += entry.BuildArtifactsSizeBytes
		log := r.log.WithFields(logrus.Fields{
			"project_id":   entry.ProjectID,
			"project_name": entry.ProjectName,
			"size_bytes":   entry.BuildArtifactsSizeBytes,
			"size_mb":      entry.BuildArtifactsSizeMB,
		})
		if entry.Error != "" {
			log = log.WithField("error", entry.Error)
		}
		log.Info("project summary")
	}

	for rank, entry := range TopBySize(entries, 10) {
		r.log.WithFields(logrus.Fields{
			"rank":         rank + 1,
			"project_id":   entry.ProjectID,
			"project_name": entry.ProjectName,
			"size_mb":      entry.BuildArtifactsSizeMB,
		}).Info("largest build artifacts")
	}

	estimator := cost.NewEstimator(nil)
	r.log.WithFields(logrus.Fields{
		"total_bytes":  totalBytes,
		"monthly_cost": cost.FormatCost(estimator.MonthlyStorageCost(totalBytes)),
		"currency":     estimator.Currency(),
	}).Info("estimated artifact storage cost")
}
