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

// Package expiry decides whether a job's artifacts are old enough to delete.
//
// The policy is a pure function of the job's timestamps and an explicit
// reference time; it never reads the system clock, so callers control "now"
// and tests stay deterministic.
package expiry

import (
	"time"

	"github.com/mikelane/gitlab-janitor/internal/gitlab"
)

// Retention is how long artifacts are kept past their (recorded or assumed)
// expiration before they become eligible for deletion.
const Retention = 7 * 24 * time.Hour

// IsExpired reports whether the job's artifacts are expired relative to ref.
//
// The following rules apply, in order:
//   - If the job records an artifact expiration timestamp, the artifacts are
//     expired when that timestamp is strictly before ref minus Retention.
//     Exact boundary equality is not expired.
//   - Otherwise, if the job records a creation timestamp, an expiration of
//     CreatedAt plus Retention is assumed, and the same strict test applies
//     to the assumed value.
//   - Jobs with neither timestamp are undecidable and never expired.
func IsExpired(job *gitlab.Job, ref time.Time) bool {
	cutoff := ref.Add(-Retention)

	if job.ArtifactsExpireAt != nil {
		return job.ArtifactsExpireAt.Before(cutoff)
	}

	if job.CreatedAt != nil {
		assumedExpiry := job.CreatedAt.Add(Retention)
		return assumedExpiry.Before(cutoff)
	}

	// Neither timestamp present: skip, do not delete
	return false
}
