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

// Package config loads janitor configuration from environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds all environment-driven configuration.
type Config struct {
	// Token authenticates every API call. A missing token is a fatal
	// configuration error, caught before any network call.
	Token   string `env:"GITLAB_TOKEN"`
	BaseURL string `env:"GITLAB_BASE_URL" envDefault:"https://gitlab.com/api/v4"`

	SummaryFile  string `env:"SUMMARY_FILE" envDefault:"gitlab_artifact_summary.json"`
	SnapshotFile string `env:"SNAPSHOT_FILE" envDefault:"gitlab_raw_project_statistics.json"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if cfg.Token == "" {
		return nil, errors.New("GITLAB_TOKEN environment variable is not set")
	}

	return cfg, nil
}
