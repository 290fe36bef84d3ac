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

// Package cleanup provides deletion of expired job artifacts from GitLab.
//
// This package implements an executor that lists the jobs of a project,
// applies the retention policy from the expiry package, and deletes the
// artifacts of expired jobs. It can be pointed at a single project or run
// fleet-wide over every accessible project.
//
// Key features:
//   - Dry-run mode that reports intended deletions without performing them
//   - Per-job error isolation: a failed delete never aborts the batch
//   - Fleet-wide runs continue past projects whose job listing fails
//   - Structured logging of every decision and outcome
//
// Expiration:
//
// A job's artifacts are eligible for deletion once their expiration timestamp
// is more than seven days in the past. Jobs that carry no expiration
// timestamp are assumed to expire seven days after creation, and jobs with
// neither timestamp are never touched. See the expiry package for the exact
// rules.
//
// Example usage:
//
//	executor := cleanup.NewExecutor(client, log)
//
//	// Simulate a cleanup of project 42
//	executor.Run(ctx, 42, true)
//
//	// Delete expired artifacts across all projects
//	executor.RunAll(ctx, false)
package cleanup
