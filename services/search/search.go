// Package search scans a folder tree on demand and ranks matching files,
// directories or lines. It holds no state between invocations and never
// mutates the filesystem.
package search

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ananyarao/notescout/logger"
)

// Content searches read at most this much of any single file.
const maxFileSize = 10 * 1024 * 1024 // 10MB

type Service struct {
	logger     logger.Logger
	maxWorkers int
}

func New(logger logger.Logger, maxWorkers int) *Service {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Service{
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

// Search runs one scan and returns results sorted by match count descending.
// Results with equal counts keep discovery order. Per-candidate failures —
// unreadable files, failed stats, a nonexistent root — degrade to missing
// entries rather than errors.
func (s *Service) Search(ctx context.Context, request Request) ([]Result, error) {
	request.ApplyDefaults()

	root := filepath.Clean(request.Path)
	match := newMatchFunc(request.Query, request.Type)
	excluded := compileIgnore(request.IgnoredPaths)

	var results []Result
	if request.Mode == ModeFilenames {
		results = s.searchFilenames(ctx, root, match, excluded)
	} else {
		results = s.searchContent(ctx, root, request.Block, match, excluded)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})

	return results, nil
}

// searchFilenames matches entry names of both files and directories. The two
// traversals share no mutable state and run concurrently.
func (s *Service) searchFilenames(ctx context.Context, root string, match matchFunc, excluded func(name, fullPath string) bool) []Result {
	notExcluded := func(name, fullPath string) bool {
		return !excluded(name, fullPath)
	}

	var files, dirs []string
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		fileCrawler := &crawler{logger: s.logger, shouldDescend: notExcluded, shouldInclude: notExcluded}
		files = fileCrawler.walk(groupCtx, root)
		return nil
	})
	group.Go(func() error {
		dirCrawler := &crawler{logger: s.logger, shouldDescend: notExcluded, shouldInclude: notExcluded, wantDirs: true}
		dirs = dirCrawler.walk(groupCtx, root)
		return nil
	})
	_ = group.Wait()

	var results []Result
	for _, path := range append(files, dirs...) {
		outcome := match(filepath.Base(path))
		if !outcome.Matches {
			continue
		}

		result := s.newResult(root, path, outcome)
		modified, created := statTimes(path)
		result.ModifiedTime = modified
		result.CreatedTime = created
		results = append(results, result)
	}

	return results
}

// searchContent matches file contents, restricted to note-like extensions.
// Files are read and matched by a bounded worker pool; per-file result slots
// keep discovery order stable regardless of worker scheduling.
func (s *Service) searchContent(ctx context.Context, root string, block Block, match matchFunc, excluded func(name, fullPath string) bool) []Result {
	fileCrawler := &crawler{
		logger: s.logger,
		shouldDescend: func(name, fullPath string) bool {
			return !excluded(name, fullPath)
		},
		shouldInclude: func(name, fullPath string) bool {
			return !excluded(name, fullPath) && hasSearchableExtension(name)
		},
	}
	files := fileCrawler.walk(ctx, root)

	perFile := make([][]Result, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.maxWorkers)

	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			perFile[i] = s.searchFile(root, path, block, match)
			return nil
		})
	}
	_ = group.Wait()

	var results []Result
	for _, fileResults := range perFile {
		results = append(results, fileResults...)
	}

	return results
}

func (s *Service) searchFile(root, path string, block Block, match matchFunc) []Result {
	content, err := readTextFile(path)
	if err != nil {
		s.logger.Debug("skipping unreadable file", "path", path, "err", err.Error())
		return nil
	}

	modified, created := statTimes(path)

	if block == BlockFileLines {
		var results []Result
		for i, line := range strings.Split(content, "\n") {
			line = strings.TrimSuffix(line, "\r")
			outcome := match(line)
			if !outcome.Matches {
				continue
			}

			result := s.newResult(root, path, outcome)
			result.LineNumber = i + 1
			result.LineText = line
			result.ModifiedTime = modified
			result.CreatedTime = created
			results = append(results, result)
		}
		return results
	}

	outcome := match(content)
	if !outcome.Matches {
		return nil
	}

	result := s.newResult(root, path, outcome)
	result.ModifiedTime = modified
	result.CreatedTime = created
	return []Result{result}
}

func (s *Service) newResult(root, path string, outcome Outcome) Result {
	relative, err := filepath.Rel(root, path)
	if err != nil {
		relative = path
	}

	return Result{
		Path:         path,
		RelativePath: relative,
		MatchCount:   outcome.MatchCount,
		FoundTime:    outcome.FoundTime,
	}
}

func hasSearchableExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".txt":
		return true
	}
	return false
}

func readTextFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	if stat.Size() > maxFileSize {
		// For large files, read only the first portion. A bare Read may
		// legally return short, so fill the whole buffer.
		buffer := make([]byte, maxFileSize)
		n, err := io.ReadFull(file, buffer)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return "", err
		}
		return string(buffer[:n]), nil
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return string(content), nil
}
