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
	"fmt"
	"sort"
	"time"

	"github.com/mikelane/gitlab-janitor/internal/gitlab"
)

// Entry is the per-project summary record. The collection is an ordered
// sequence with at most one entry per project ID; the JSON field names match
// the persisted summary file format.
type Entry struct {
	ProjectID               int                       `json:"projectId"`
	ProjectName             string                    `json:"projectName"`
	BuildArtifactsSizeBytes int64                     `json:"buildArtifactsSizeBytes"`
	BuildArtifactsSizeMB    string                    `json:"buildArtifactsSizeMB"`
	Statistics              *gitlab.ProjectStatistics `json:"statistics"`
	Error                   string                    `json:"error,omitempty"`
	Timestamp               time.Time                 `json:"timestamp"`
}

// Store persists the summary collection and the raw project snapshot. The
// reconciler only depends on this interface, so tests can run against an
// in-memory implementation.
type Store interface {
	// LoadSummary loads the persisted summary collection. A missing or
	// unreadable file yields an empty collection, not an error.
	LoadSummary() ([]Entry, error)
	// SaveSummary overwrites the persisted summary collection wholesale.
	SaveSummary(entries []Entry) error
	// SaveSnapshot overwrites the raw per-project statistics snapshot.
	SaveSnapshot(projects []*gitlab.Project) error
}

// Upsert merges entry into the collection by project ID: an existing entry
// with the same ID is replaced in place, preserving the collection's order;
// otherwise the entry is appended.
func Upsert(entries []Entry, entry Entry) []Entry {
	for i := range entries {
		if entries[i].ProjectID == entry.ProjectID {
			entries[i] = entry
			return entries
		}
	}
	return append(entries, entry)
}

// TopBySize returns up to n entries with the greatest build artifact size,
// descending. Ties keep the collection's original order.
func TopBySize(entries []Entry, n int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BuildArtifactsSizeBytes > sorted[j].BuildArtifactsSizeBytes
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Megabytes renders a byte count as mebibytes with two decimals.
func Megabytes(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/(1024*1024))
}
