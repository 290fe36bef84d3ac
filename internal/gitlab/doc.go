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

// Package gitlab provides GitLab API integration for the janitor.
//
// This package implements a client for interacting with the GitLab REST API
// to enumerate projects, fetch per-project storage statistics, list CI jobs,
// and delete job artifacts.
//
// Key features:
//   - Full pagination of list endpoints (projects, jobs) at a fixed page size
//   - Project statistics lookup (statistics=true) including job_artifacts_size
//   - Job artifact deletion
//   - Conversion of wire types into a small domain model
//
// Authentication:
//
// The client requires a GitLab personal or project access token with the
// following scopes:
//   - read_api (for listing projects and jobs)
//   - api (for deleting job artifacts)
//
// Example usage:
//
//	client, err := gitlab.NewClient(token, "https://gitlab.com/api/v4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	projects, err := client.ListProjects(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("found %d projects\n", len(projects))
//
// Pagination:
//
// List endpoints are paginated with per_page=100. The client follows the
// X-Next-Page response header until the platform stops advertising a next
// page; it never assumes a maximum page count.
//
// Retries:
//
// Transient failures (429 and 5xx responses) are retried with backoff by the
// underlying client-go transport. Errors surfaced by this package are
// post-retry failures and are propagated to the caller without any additional
// retry policy.
package gitlab
