// Suasor - Slope One Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suasor

package recommend

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/suasor/internal/logging"
	"github.com/tomtom215/suasor/internal/slopeone"
)

// csvHeader is the column header every shard file starts with.
var csvHeader = []string{"sourceMovieId", "targetMovieId", "correlation"}

// CSVStore persists the matrix as one CSV file per shard, named
// <prefix>-<shardIndex>-of-<shardCount>.csv. The shard count baked into
// each filename lets the loader detect a layout that no longer matches
// the configuration.
type CSVStore struct {
	prefix string
}

// NewCSVStore creates a store writing under the given path prefix, e.g.
// /data/model/correlations.
func NewCSVStore(prefix string) *CSVStore {
	return &CSVStore{prefix: prefix}
}

// Mode implements ModelStore.
func (s *CSVStore) Mode() string { return "csv" }

// shardFilePath builds the canonical file name for one shard.
func (s *CSVStore) shardFilePath(index, shardCount int) string {
	return fmt.Sprintf("%s-%d-of-%d.csv", s.prefix, index, shardCount)
}

// shardFiles returns all persisted shard files for this prefix, sorted.
func (s *CSVStore) shardFiles() ([]string, error) {
	files, err := filepath.Glob(s.prefix + "-*-of-*.csv")
	if err != nil {
		return nil, fmt.Errorf("glob shard files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Replace writes every shard to its own file, one worker per shard,
// after removing all files from any prior model. Each file is written to
// a temporary name and renamed into place so a crashed writer never
// leaves a half-written shard under the canonical name; a partially
// replaced model (some shards new, some missing) is caught later by
// VerifyShardLayout.
func (s *CSVStore) Replace(ctx context.Context, matrix *slopeone.Matrix, shards []slopeone.Shard) error {
	dir := filepath.Dir(s.prefix)
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // G301: 0750 intentional
		return fmt.Errorf("create model directory %s: %w", dir, err)
	}
	if err := s.removeExisting(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, shard := range shards {
		g.Go(func() error {
			return s.writeShardFile(gctx, shard, len(shards), matrix)
		})
	}
	return g.Wait()
}

// removeExisting deletes prior shard files and abandoned temp files so a
// shard-count change cannot leave stale files alongside the new layout.
func (s *CSVStore) removeExisting() error {
	for _, pattern := range []string{s.prefix + "-*-of-*.csv", s.prefix + "-*-of-*.csv.tmp"} {
		stale, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("glob stale model files: %w", err)
		}
		for _, path := range stale {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove stale model file %s: %w", path, err)
			}
		}
	}
	return nil
}

// writeShardFile streams one shard's rows in row-major order: every
// target column for the first source movie, then the next source, and so
// on. The diagonal is written as 0 like any other cell, so a complete
// file always holds len(shard.MovieIDs) * len(universe) rows.
func (s *CSVStore) writeShardFile(ctx context.Context, shard slopeone.Shard, shardCount int, matrix *slopeone.Matrix) (err error) {
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("persist aborted at shard %d: %w", shard.Index, err)
	}
	path := s.shardFilePath(shard.Index, shardCount)
	tmp := path + ".tmp"

	f, err := os.Create(tmp) //nolint:gosec // G304: path derives from validated config
	if err != nil {
		return fmt.Errorf("create shard file %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			closeQuietly(f)
			if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
				logging.Warn().Err(rmErr).Str("path", tmp).Msg("Failed to remove partial shard file")
			}
		}
	}()

	w := csv.NewWriter(f)
	if err = w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header to %s: %w", tmp, err)
	}

	universe := matrix.MovieIDs()
	record := make([]string, 3)
	for _, sourceID := range shard.MovieIDs {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("persist aborted at shard %d: %w", shard.Index, err)
		}
		row, ok := matrix.Row(sourceID)
		if !ok {
			return fmt.Errorf("shard %d movie %d is not in the matrix", shard.Index, sourceID)
		}
		record[0] = strconv.FormatInt(sourceID, 10)
		for col, correlation := range row {
			record[1] = strconv.FormatInt(universe[col], 10)
			record[2] = strconv.FormatFloat(correlation, 'g', -1, 64)
			if err = w.Write(record); err != nil {
				return fmt.Errorf("write row to %s: %w", tmp, err)
			}
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s into place: %w", tmp, err)
	}
	return nil
}

// MovieIDs scans the source column of every shard file and returns the
// distinct ids sorted ascending. Together the shard files cover every
// source movie exactly once, so the union is the full universe the
// matrix was trained over.
func (s *CSVStore) MovieIDs(ctx context.Context) ([]int64, error) {
	files, err := s.shardFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no persisted model files match %s-*-of-*.csv", s.prefix)
	}

	seen := make(map[int64]struct{})
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.collectSourceIDs(path, seen); err != nil {
			return nil, err
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// collectSourceIDs reads one shard file's source column into seen.
func (s *CSVStore) collectSourceIDs(path string, seen map[int64]struct{}) (err error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from our own glob
	if err != nil {
		return fmt.Errorf("open shard file %s: %w", path, err)
	}
	defer closeWithLog(f, path)

	r := csv.NewReader(f)
	if err := validateHeader(r, path); err != nil {
		return err
	}
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: bad source movie id %q: %w", path, record[0], err)
		}
		seen[id] = struct{}{}
	}
}

// VerifyShardLayout checks that exactly shardCount files exist, that
// every one was written for a shardCount-shard layout, and that shard
// indices 1..shardCount each appear once.
func (s *CSVStore) VerifyShardLayout(_ context.Context, shardCount int) error {
	files, err := s.shardFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no persisted model files match %s-*-of-*.csv", s.prefix)
	}

	found := make(map[int]string, len(files))
	for _, path := range files {
		index, total, err := parseShardFileName(s.prefix, path)
		if err != nil {
			return err
		}
		if total != shardCount {
			return fmt.Errorf("%s was written for %d shards but %d are configured", path, total, shardCount)
		}
		if index < 1 || index > total {
			return fmt.Errorf("%s has shard index %d outside 1..%d", path, index, total)
		}
		if prior, dup := found[index]; dup {
			return fmt.Errorf("shard index %d appears in both %s and %s", index, prior, path)
		}
		found[index] = path
	}
	if len(found) != shardCount {
		return fmt.Errorf("found %d of %d shard files for prefix %s", len(found), shardCount, s.prefix)
	}
	return nil
}

// LoadShard reads one shard file and writes its rows into the matrix.
// Every stored id must map into the matrix universe; an unmapped id
// means the file and the universe disagree and the load is unsound.
func (s *CSVStore) LoadShard(ctx context.Context, shard slopeone.Shard, shardCount int, matrix *slopeone.Matrix) (err error) {
	path := s.shardFilePath(shard.Index, shardCount)
	f, err := os.Open(path) //nolint:gosec // G304: path derives from validated config
	if err != nil {
		return fmt.Errorf("open shard file %s: %w", path, err)
	}
	defer closeWithLog(f, path)

	r := csv.NewReader(f)
	if err := validateHeader(r, path); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("load aborted at shard %d: %w", shard.Index, err)
		}
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		sourceID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: bad source movie id %q: %w", path, record[0], err)
		}
		targetID, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: bad target movie id %q: %w", path, record[1], err)
		}
		correlation, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return fmt.Errorf("%s: bad correlation %q: %w", path, record[2], err)
		}

		if !matrix.SetCorrelation(sourceID, targetID, correlation) {
			return fmt.Errorf("%s: stored pair (%d, %d) is outside the loaded movie universe", path, sourceID, targetID)
		}
	}
}

// validateHeader consumes and checks the header row of a shard file.
func validateHeader(r *csv.Reader, path string) error {
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}
	if len(header) != len(csvHeader) {
		return fmt.Errorf("%s: header has %d columns, want %d", path, len(header), len(csvHeader))
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return fmt.Errorf("%s: header column %d is %q, want %q", path, i, header[i], want)
		}
	}
	return nil
}

// parseShardFileName extracts shard index and total from a file named
// <prefix>-<index>-of-<total>.csv.
func parseShardFileName(prefix, path string) (index, total int, err error) {
	base := filepath.Base(path)
	trimmed := strings.TrimPrefix(base, filepath.Base(prefix)+"-")
	trimmed = strings.TrimSuffix(trimmed, ".csv")
	parts := strings.Split(trimmed, "-of-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%s does not match <prefix>-<index>-of-<total>.csv", path)
	}
	index, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: bad shard index %q: %w", path, parts[0], err)
	}
	total, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: bad shard count %q: %w", path, parts[1], err)
	}
	return index, total, nil
}

// closeWithLog closes a file, logging on failure. Read paths use it
// where a close error cannot change the outcome.
func closeWithLog(c io.Closer, path string) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Failed to close shard file")
	}
}

// closeQuietly closes ignoring errors, for cleanup paths that already
// have a primary error to report.
func closeQuietly(c io.Closer) {
	_ = c.Close()
}
