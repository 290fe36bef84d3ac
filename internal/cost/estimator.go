/*
MIT License

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

// Package cost provides storage cost estimation for build artifacts.
//
// This package converts artifact byte counts into an estimated monthly
// storage cost, so the summary report can show what retained artifacts are
// worth in money rather than only in bytes.
package cost

import (
	"fmt"
)

// Config defines the pricing configuration for cost estimation
type Config struct {
	Currency              string
	StorageCostPerGBMonth float64
}

// DefaultConfig returns the default pricing configuration
func DefaultConfig() *Config {
	return &Config{
		StorageCostPerGBMonth: 0.05, // $0.05 per GB-month, a common object storage rate
		Currency:              "USD",
	}
}

// Estimator calculates storage costs for build artifacts
type Estimator struct {
	config *Config
}

// NewEstimator creates a new cost estimator with the given configuration.
// If config is nil, default configuration is used.
func NewEstimator(config *Config) *Estimator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Estimator{
		config: config,
	}
}

// MonthlyStorageCost calculates the estimated monthly cost of storing the
// given number of bytes.
func (e *Estimator) MonthlyStorageCost(bytes int64) float64 {
	gigabytes := float64(bytes) / (1024 * 1024 * 1024)
	return gigabytes * e.config.StorageCostPerGBMonth
}

// Currency returns the configured currency code
func (e *Estimator) Currency() string {
	return e.config.Currency
}

// FormatCost formats a cost value as a string with 4 decimal places for transparency
func FormatCost(cost float64) string {
	return fmt.Sprintf("%.4f", cost)
}
