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
	"encoding/json"
	"fmt"
	"io"
	"time"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/mikelane/gitlab-janitor/internal/gitlab"
)

// fakeClient serves canned projects and statistics, counting fetches.
type fakeClient struct {
	listed      []*gitlab.Project
	listErr     error
	full        map[int]*gitlab.Project
	fullErr     map[int]error
	getCalls    int
	listedCalls int
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]*gitlab.Project, error) {
	f.listedCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *fakeClient) GetProject(ctx context.Context, projectID int) (*gitlab.Project, error) {
	f.getCalls++
	if err := f.fullErr[projectID]; err != nil {
		return nil, err
	}
	if project, ok := f.full[projectID]; ok {
		return project, nil
	}
	return nil, fmt.Errorf("unexpected GetProject(%d)", projectID)
}

func (f *fakeClient) ListProjectJobs(ctx context.Context, projectID int) ([]*gitlab.Job, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeClient) DeleteJobArtifacts(ctx context.Context, projectID, jobID int) error {
	return fmt.Errorf("not implemented")
}

// memStore is an in-memory Store that counts saves.
type memStore struct {
	summary       []Entry
	snapshot      []*gitlab.Project
	summarySaves  int
	snapshotSaves int
	saveErr       error
}

func (m *memStore) LoadSummary() ([]Entry, error) {
	return m.summary, nil
}

func (m *memStore) SaveSummary(entries []Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.summary = make([]Entry, len(entries))
	copy(m.summary, entries)
	m.summarySaves++
	return nil
}

func (m *memStore) SaveSnapshot(projects []*gitlab.Project) error {
	m.snapshot = projects
	m.snapshotSaves++
	return nil
}

var _ = ginkgo.Describe("Reconciler", func() {
	var (
		client *fakeClient
		store  *memStore
		rec    *Reconciler
		ctx    context.Context
		now    time.Time
	)

	stats := func(artifactsSize int64) *gitlab.ProjectStatistics {
		return &gitlab.ProjectStatistics{
			StorageSize:      artifactsSize * 3,
			JobArtifactsSize: artifactsSize,
		}
	}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

		client = &fakeClient{
			listed: []*gitlab.Project{
				{ID: 1, Name: "alpha"},
				{ID: 2, Name: "beta"},
			},
			full: map[int]*gitlab.Project{
				1: {ID: 1, Name: "alpha", Statistics: stats(1048576)},
				2: {ID: 2, Name: "beta", Statistics: stats(3145728)},
			},
			fullErr: map[int]error{},
		}
		store = &memStore{}

		log := logrus.New()
		log.SetOutput(io.Discard)

		rec = NewReconciler(client, store, log)
		rec.now = func() time.Time { return now }
	})

	ginkgo.Context("fleet-wide run", func() {
		ginkgo.It("builds one entry per project with derived sizes", func() {
			entries, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))

			Expect(entries[0].ProjectID).To(Equal(1))
			Expect(entries[0].BuildArtifactsSizeBytes).To(Equal(int64(1048576)))
			Expect(entries[0].BuildArtifactsSizeMB).To(Equal("1.00"))
			Expect(entries[0].Timestamp).To(Equal(now))

			Expect(entries[1].ProjectID).To(Equal(2))
			Expect(entries[1].BuildArtifactsSizeMB).To(Equal("3.00"))
		})

		ginkgo.It("persists the summary after every project", func() {
			_, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(store.summarySaves).To(Equal(2))
		})

		ginkgo.It("overwrites the raw snapshot wholesale", func() {
			_, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(store.snapshotSaves).To(Equal(1))
			Expect(store.snapshot).To(HaveLen(2))
			Expect(store.snapshot[0].Statistics).NotTo(BeNil())
		})

		ginkgo.It("records the unavailable error when statistics are missing", func() {
			client.full[2] = &gitlab.Project{ID: 2, Name: "beta"}

			entries, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(entries[1].BuildArtifactsSizeBytes).To(Equal(int64(0)))
			Expect(entries[1].BuildArtifactsSizeMB).To(Equal("0.00"))
			Expect(entries[1].Error).To(Equal(ErrArtifactsSizeUnavailable))
		})

		ginkgo.It("synthesizes an errored entry on fetch failure and keeps going", func() {
			client.fullErr[1] = fmt.Errorf("503 Service Unavailable")

			entries, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))

			Expect(entries[0].ProjectID).To(Equal(1))
			Expect(entries[0].Error).To(Equal(ErrArtifactsSizeUnavailable))
			Expect(entries[0].Statistics).To(BeNil())
			Expect(store.snapshot[0].Error).To(ContainSubstring("503"))

			Expect(entries[1].Error).To(BeEmpty())
		})

		ginkgo.It("aborts when the project listing fails", func() {
			client.listErr = fmt.Errorf("401 Unauthorized")

			_, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).To(HaveOccurred())
			Expect(store.summarySaves).To(BeZero())
		})
	})

	ginkgo.Context("resumability", func() {
		ginkgo.It("skips projects with a valid cached entry", func() {
			first, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.getCalls).To(Equal(2))

			second, err := rec.Reconcile(ctx, first, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.getCalls).To(Equal(2), "all projects should be served from cache")

			firstJSON, err := json.Marshal(first)
			Expect(err).NotTo(HaveOccurred())
			secondJSON, err := json.Marshal(second)
			Expect(err).NotTo(HaveOccurred())
			Expect(secondJSON).To(Equal(firstJSON), "a no-change re-run must be byte-identical")
		})

		ginkgo.It("re-fetches errored entries on the next run", func() {
			client.fullErr[1] = fmt.Errorf("flaky")
			first, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())

			delete(client.fullErr, 1)
			second, err := rec.Reconcile(ctx, first, Options{})
			Expect(err).NotTo(HaveOccurred())

			Expect(second[0].Error).To(BeEmpty())
			Expect(second[0].BuildArtifactsSizeBytes).To(Equal(int64(1048576)))
		})

		ginkgo.It("re-fetches everything when forced", func() {
			first, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.getCalls).To(Equal(2))

			_, err = rec.Reconcile(ctx, first, Options{ForceUpdate: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.getCalls).To(Equal(4))
		})

		ginkgo.It("retains entries for projects no longer listed", func() {
			existing := []Entry{{
				ProjectID:  99,
				Statistics: stats(42),
			}}

			entries, err := rec.Reconcile(ctx, existing, Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].ProjectID).To(Equal(99))
		})

		ginkgo.It("never produces duplicate project IDs", func() {
			entries, err := rec.Reconcile(ctx, nil, Options{})
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 3; i++ {
				entries, err = rec.Reconcile(ctx, entries, Options{ForceUpdate: true})
				Expect(err).NotTo(HaveOccurred())
			}

			seen := map[int]bool{}
			for _, entry := range entries {
				Expect(seen[entry.ProjectID]).To(BeFalse(), "duplicate project ID %d", entry.ProjectID)
				seen[entry.ProjectID] = true
			}
		})
	})

	ginkgo.Context("single-target run", func() {
		ginkgo.It("fetches only the target project and upserts it", func() {
			target := 2
			existing := []Entry{{ProjectID: 1, ProjectName: "alpha", Statistics: stats(7)}}

			entries, err := rec.Reconcile(ctx, existing, Options{ProjectID: &target})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.listedCalls).To(BeZero())
			Expect(entries).To(HaveLen(2))
			Expect(entries[1].ProjectID).To(Equal(2))
			Expect(store.summarySaves).To(Equal(1))
		})

		ginkgo.It("fails the run when the target fetch fails", func() {
			target := 1
			client.fullErr[1] = fmt.Errorf("404 Project Not Found")

			_, err := rec.Reconcile(ctx, nil, Options{ProjectID: &target})
			Expect(err).To(HaveOccurred())
			Expect(store.summarySaves).To(BeZero())
		})
	})
})
