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

package gitlab

import (
	"context"
	"time"
)

// Client interface defines the contract for interacting with the GitLab API
type Client interface {
	// ListProjects retrieves all accessible, non-archived projects
	ListProjects(ctx context.Context) ([]*Project, error)
	// GetProject retrieves a single project including its storage statistics
	GetProject(ctx context.Context, projectID int) (*Project, error)
	// ListProjectJobs retrieves all jobs for a project
	ListProjectJobs(ctx context.Context, projectID int) ([]*Job, error)
	// DeleteJobArtifacts deletes the artifacts of a single job
	DeleteJobArtifacts(ctx context.Context, projectID, jobID int) error
}

// Project represents GitLab project metadata, optionally enriched with
// storage statistics
type Project struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	PathWithNamespace string             `json:"path_with_namespace,omitempty"`
	Statistics        *ProjectStatistics `json:"statistics"`
	Error             string             `json:"error,omitempty"`
}

// ProjectStatistics represents the storage counters GitLab reports for a
// project when statistics=true is requested
type ProjectStatistics struct {
	CommitCount           int64 `json:"commit_count"`
	StorageSize           int64 `json:"storage_size"`
	RepositorySize        int64 `json:"repository_size"`
	WikiSize              int64 `json:"wiki_size"`
	LFSObjectsSize        int64 `json:"lfs_objects_size"`
	JobArtifactsSize      int64 `json:"job_artifacts_size"`
	PipelineArtifactsSize int64 `json:"pipeline_artifacts_size"`
	PackagesSize          int64 `json:"packages_size"`
	SnippetsSize          int64 `json:"snippets_size"`
	UploadsSize           int64 `json:"uploads_size"`
}

// Job represents a single CI job within a project. CreatedAt and
// ArtifactsExpireAt are pointers because GitLab omits them in some responses;
// the expiration policy treats a missing value differently from a zero value.
type Job struct {
	ID                int        `json:"id"`
	Name              string     `json:"name,omitempty"`
	Status            string     `json:"status,omitempty"`
	CreatedAt         *time.Time `json:"created_at"`
	ArtifactsExpireAt *time.Time `json:"artifacts_expire_at"`
}
