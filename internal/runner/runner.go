// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/schollz/progressbar/v3"
	"github.com/scylladb/go-set/strset"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/glebics/basealt-test-task/internal/config"
	"github.com/glebics/basealt-test-task/internal/log"
	"github.com/glebics/basealt-test-task/internal/pkgdiff"
	"github.com/glebics/basealt-test-task/internal/store"
)

// Fetcher returns the listing of branch for arch.
type Fetcher interface {
	Fetch(ctx context.Context, branch, arch string) ([]pkgdiff.Record, error)
}

// Runner ties a Fetcher and a Store together for the configured branches.
type Runner struct {
	settings config.Settings
	fetcher  Fetcher
	store    store.Store
	progress io.Writer
	notices  io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress draws a fetch progress bar on w. Nil disables it.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) { r.progress = w }
}

// WithNotices sends user facing notices (saved files, skipped
// architectures, missing listings) to w.
func WithNotices(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.notices = w
		}
	}
}

// New returns a Runner.
func New(s config.Settings, f Fetcher, st store.Store, opts ...Option) *Runner {
	r := &Runner{
		settings: s,
		fetcher:  f,
		store:    st,
		notices:  io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ProgressWriter returns f when it is a terminal and nil otherwise, so a bar
// is never written into a redirected stream.
func ProgressWriter(f *os.File) io.Writer {
	if f != nil && term.IsTerminal(int(f.Fd())) {
		return f
	}
	return nil
}

// Archs returns the requested architectures without duplicates, in request
// order. An empty request selects every configured architecture.
func (r *Runner) Archs(requested []string) []string {
	if len(requested) == 0 {
		requested = r.settings.Archs
	}
	seen := strset.New()
	archs := make([]string, 0, len(requested))
	for _, a := range requested {
		if a == "" || seen.Has(a) {
			continue
		}
		seen.Add(a)
		archs = append(archs, a)
	}
	return archs
}

func (r *Runner) branches() []string {
	return []string{r.settings.BranchA, r.settings.BranchB}
}

// FetchAll fetches and persists the listings of both branches for every
// arch. All pairs are attempted; the failures are returned together.
func (r *Runner) FetchAll(ctx context.Context, archs []string) error {
	type job struct{ branch, arch string }
	var jobs []job
	for _, arch := range archs {
		for _, branch := range r.branches() {
			jobs = append(jobs, job{branch, arch})
		}
	}

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions(len(jobs),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("fetching"),
			progressbar.OptionSetWidth(40), //nolint:mnd
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond), //nolint:mnd
		)
	}

	var (
		mu     sync.Mutex
		result *multierror.Error
	)

	var g errgroup.Group
	g.SetLimit(r.settings.Workers)
	for _, j := range jobs {
		g.Go(func() error {
			err := r.fetchOne(ctx, j.branch, j.arch)
			if err != nil {
				log.WithError(err).Errorf("fetch %s/%s failed", j.branch, j.arch)
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
			if bar != nil {
				bar.Describe(fmt.Sprintf("fetched %s/%s", j.branch, j.arch))
				_ = bar.Add(1)
			}
			// Never cancel the siblings.
			return nil
		})
	}
	_ = g.Wait()

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(r.progress)
	}
	return result.ErrorOrNil()
}

func (r *Runner) fetchOne(ctx context.Context, branch, arch string) error {
	start := time.Now()
	records, err := r.fetcher.Fetch(ctx, branch, arch)
	if err != nil {
		return fmt.Errorf("fetch %s/%s: %w", branch, arch, err)
	}
	log.Debugf("fetch %s/%s: records=%d elapsed=%s", branch, arch, len(records), time.Since(start))

	return r.Save(ctx, branch, arch, records)
}

// Save persists a listing. An empty listing is not written.
func (r *Runner) Save(ctx context.Context, branch, arch string, records []pkgdiff.Record) error {
	if len(records) == 0 {
		fmt.Fprintf(r.notices, "no packages to save for branch %s and arch %s\n", branch, arch)
		return nil
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", branch, arch, err)
	}

	key := store.ListingKey(r.settings.DataDir, branch, arch)
	if err := r.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s/%s: %w", branch, arch, err)
	}
	fmt.Fprintf(r.notices, "saved %s\n", key)
	return nil
}

// Load reads a persisted listing. A missing listing is an empty one.
func (r *Runner) Load(ctx context.Context, branch, arch string) ([]pkgdiff.Record, error) {
	key := store.ListingKey(r.settings.DataDir, branch, arch)
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(r.notices, "no listing for branch %s and arch %s at %s\n", branch, arch, key)
		return []pkgdiff.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s/%s: %w", branch, arch, err)
	}

	records, err := pkgdiff.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if records == nil {
		records = []pkgdiff.Record{}
	}
	log.Debugf("loaded %s: records=%d", key, len(records))
	return records, nil
}

// Compare runs the comparison for every arch. With fetch set the listings
// are refreshed first; a failed fetch is reported but the persisted listing,
// if any, is still compared. An arch with one empty side is still compared
// and written; only an arch with both sides empty is skipped. Results are returned in arch order together
// with every error met on the way.
func (r *Runner) Compare(ctx context.Context, archs []string, fetch bool) ([]Result, error) {
	var result *multierror.Error

	if fetch {
		if err := r.FetchAll(ctx, archs); err != nil {
			result = multierror.Append(result, err)
		}
	}

	results := make([]Result, 0, len(archs))
	for _, arch := range archs {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}

		res, err := r.compareOne(ctx, arch)
		if err != nil {
			log.WithError(err).Errorf("compare %s failed", arch)
			result = multierror.Append(result, err)
			continue
		}
		results = append(results, res)
	}

	return results, result.ErrorOrNil()
}

func (r *Runner) compareOne(ctx context.Context, arch string) (Result, error) {
	res := Result{
		Arch:   arch,
		LabelA: r.settings.BranchA,
		LabelB: r.settings.BranchB,
	}

	a, err := r.Load(ctx, r.settings.BranchA, arch)
	if err != nil {
		return res, err
	}
	b, err := r.Load(ctx, r.settings.BranchB, arch)
	if err != nil {
		return res, err
	}
	res.CountA, res.CountB = len(a), len(b)

	if len(a) == 0 && len(b) == 0 {
		fmt.Fprintf(r.notices, "no data for arch %s, skipping\n", arch)
		res.Skipped = true
		return res, nil
	}
	for _, side := range []struct {
		branch string
		n      int
	}{{r.settings.BranchA, len(a)}, {r.settings.BranchB, len(b)}} {
		if side.n == 0 {
			fmt.Fprintf(r.notices, "no packages in branch %s for arch %s, comparing against an empty list\n", side.branch, arch)
		}
	}

	report, err := pkgdiff.Diff(a, b, pkgdiff.WithLabels(r.settings.BranchA, r.settings.BranchB))
	if err != nil {
		return res, fmt.Errorf("compare %s: %w", arch, err)
	}
	res.Report = report

	if err := r.WriteReport(ctx, arch, report); err != nil {
		return res, err
	}
	return res, nil
}

// WriteReport writes the full report and one file per bucket.
func (r *Runner) WriteReport(ctx context.Context, arch string, report pkgdiff.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report %s: %w", arch, err)
	}
	key := store.ReportKey(r.settings.ResultsDir, arch)
	if err := r.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write report %s: %w", arch, err)
	}
	fmt.Fprintf(r.notices, "saved %s\n", key)

	for _, bucket := range report.Buckets() {
		records := bucket.Records
		if records == nil {
			records = []pkgdiff.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", bucket.Key, arch, err)
		}
		key := store.BucketKey(r.settings.ResultsDir, bucket.Key, arch)
		if err := r.store.Put(ctx, key, data); err != nil {
			return fmt.Errorf("write %s %s: %w", bucket.Key, arch, err)
		}
		fmt.Fprintf(r.notices, "saved %s\n", key)
	}
	return nil
}
