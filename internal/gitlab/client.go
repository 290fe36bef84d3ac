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
	"errors"
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// perPage is the fixed page size used for every paginated list call.
const perPage = 100

// gitlabClient implements the Client interface using the official client-go library
type gitlabClient struct {
	client *gitlab.Client
}

// NewClient creates a new GitLab client with the provided token and base URL.
// The base URL must point at the API root (e.g. https://gitlab.com/api/v4).
func NewClient(token, baseURL string) (Client, error) {
	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &gitlabClient{client: client}, nil
}

// ListProjects retrieves all accessible projects, excluding archived ones.
// Pagination follows the X-Next-Page response header until it is absent;
// no maximum page count is assumed.
func (c *gitlabClient) ListProjects(ctx context.Context) ([]*Project, error) {
	allProjects := []*Project{} // Initialize as empty slice, not nil
	opts := &gitlab.ListProjectsOptions{
		ListOptions: gitlab.ListOptions{
			PerPage: perPage,
		},
		Archived: gitlab.Ptr(false),
		Simple:   gitlab.Ptr(true),
	}

	for {
		projects, resp, err := c.client.Projects.ListProjects(opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}

		for _, project := range projects {
			allProjects = append(allProjects, c.convertProject(project))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allProjects, nil
}

// GetProject retrieves a single project with its storage statistics
func (c *gitlabClient) GetProject(ctx context.Context, projectID int) (*Project, error) {
	project, _, err := c.client.Projects.GetProject(projectID, &gitlab.GetProjectOptions{
		Statistics: gitlab.Ptr(true),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}

	return c.convertProject(project), nil
}

// ListProjectJobs retrieves all jobs for the given project, paginated the
// same way as ListProjects
func (c *gitlabClient) ListProjectJobs(ctx context.Context, projectID int) ([]*Job, error) {
	allJobs := []*Job{}
	opts := &gitlab.ListJobsOptions{
		ListOptions: gitlab.ListOptions{
			PerPage: perPage,
		},
	}

	for {
		jobs, resp, err := c.client.Jobs.ListProjectJobs(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs for project %d: %w", projectID, err)
		}

		for _, job := range jobs {
			allJobs = append(allJobs, c.convertJob(job))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allJobs, nil
}

// DeleteJobArtifacts deletes the artifacts of a single job
func (c *gitlabClient) DeleteJobArtifacts(ctx context.Context, projectID, jobID int) error {
	_, err := c.client.Jobs.DeleteArtifacts(projectID, jobID, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete artifacts of job %d in project %d: %w", jobID, projectID, err)
	}

	return nil
}

// RemoteStatus extracts the HTTP status code from a GitLab API error, so
// callers can log it alongside the message. Returns 0 when the error does not
// carry a remote response.
func RemoteStatus(err error) int {
	var respErr *gitlab.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode
	}
	return 0
}

// convertProject converts a GitLab project to our domain model
func (c *gitlabClient) convertProject(project *gitlab.Project) *Project {
	if project == nil {
		return nil
	}

	result := &Project{
		ID:                project.ID,
		Name:              project.Name,
		PathWithNamespace: project.PathWithNamespace,
	}

	if project.Statistics != nil {
		result.Statistics = &ProjectStatistics{
			CommitCount:           project.Statistics.CommitCount,
			StorageSize:           project.Statistics.StorageSize,
			RepositorySize:        project.Statistics.RepositorySize,
			WikiSize:              project.Statistics.WikiSize,
			LFSObjectsSize:        project.Statistics.LFSObjectsSize,
			JobArtifactsSize:      project.Statistics.JobArtifactsSize,
			PipelineArtifactsSize: project.Statistics.PipelineArtifactsSize,
			PackagesSize:          project.Statistics.PackagesSize,
			SnippetsSize:          project.Statistics.SnippetsSize,
			UploadsSize:           project.Statistics.UploadsSize,
		}
	}

	return result
}

// convertJob converts a GitLab job to our domain model
func (c *gitlabClient) convertJob(job *gitlab.Job) *Job {
	if job == nil {
		return nil
	}

	return &Job{
		ID:                job.ID,
		Name:              job.Name,
		Status:            job.Status,
		CreatedAt:         job.CreatedAt,
		ArtifactsExpireAt: job.ArtifactsExpireAt,
	}
}
