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

// Package summary reconciles per-project storage statistics into a persisted
// summary collection.
//
// The reconciler walks the project list, skips projects whose summary entry
// is still valid (unless forced), fetches statistics for the rest, and
// upserts one entry per project ID into the collection. The collection is
// persisted through the Store interface after every upsert, which bounds the
// work lost to an interruption to a single project and makes re-runs
// idempotent: a restarted run reuses every valid entry it already wrote.
//
// Invariants:
//   - The collection never contains two entries with the same project ID.
//   - An upsert replaces the prior entry entirely; fields are never merged.
//   - A skipped project's entry is carried over verbatim, so a run with no
//     remote changes leaves the persisted file byte-identical.
package summary
