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

// Package store persists the summary collection and the raw statistics
// snapshot as pretty-printed JSON files.
//
// Loads are forgiving: a missing or unparseable file yields an empty
// collection with a logged warning, never an error, so a corrupted state
// file costs one full re-fetch instead of a failed run.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mikelane/gitlab-janitor/internal/gitlab"
	"github.com/mikelane/gitlab-janitor/internal/summary"
)

// FileStore implements summary.Store on top of two JSON files.
type FileStore struct {
	summaryPath  string
	snapshotPath string
	log          logrus.FieldLogger
}

// NewFileStore creates a file-backed store writing the summary collection and
// the raw snapshot to the given paths.
func NewFileStore(summaryPath, snapshotPath string, log logrus.FieldLogger) *FileStore {
	return &FileStore{
		summaryPath:  summaryPath,
		snapshotPath: snapshotPath,
		log:          log,
	}
}

// LoadSummary loads the persisted summary collection. Missing and corrupt
// files both yield an empty collection.
func (s *FileStore) LoadSummary() ([]summary.Entry, error) {
	data, err := os.ReadFile(s.summaryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).WithField("path", s.summaryPath).
				Warn("could not read summary file, starting from an empty collection")
		}
		return []summary.Entry{}, nil
	}

	var entries []summary.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.WithError(err).WithField("path", s.summaryPath).
			Warn("could not parse summary file, starting from an empty collection")
		return []summary.Entry{}, nil
	}

	return entries, nil
}

// SaveSummary overwrites the summary file wholesale.
func (s *FileStore) SaveSummary(entries []summary.Entry) error {
	return s.write(s.summaryPath, entries)
}

// SaveSnapshot overwrites the raw statistics snapshot wholesale.
func (s *FileStore) SaveSnapshot(projects []*gitlab.Project) error {
	return s.write(s.snapshotPath, projects)
}

func (s *FileStore) write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
