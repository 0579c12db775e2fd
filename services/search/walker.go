package search

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ananyarao/notescout/logger"
)

// crawler recursively enumerates one directory tree. shouldDescend prunes
// whole subtrees before they are entered; shouldInclude filters individual
// candidates. With wantDirs set it yields directories (never the root itself)
// instead of files. Unreadable directories are skipped, not fatal.
type crawler struct {
	logger        logger.Logger
	shouldDescend func(name, fullPath string) bool
	shouldInclude func(name, fullPath string) bool
	wantDirs      bool
}

func (c *crawler) walk(ctx context.Context, root string) []string {
	var found []string
	c.visit(ctx, root, &found)
	return found
}

func (c *crawler) visit(ctx context.Context, dir string, found *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Debug("skipping unreadable directory", "path", dir, "err", err.Error())
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		name := entry.Name()
		fullPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if !c.shouldDescend(name, fullPath) {
				continue
			}
			if c.wantDirs && c.shouldInclude(name, fullPath) {
				*found = append(*found, fullPath)
			}
			c.visit(ctx, fullPath, found)
			continue
		}

		if !c.wantDirs && c.shouldInclude(name, fullPath) {
			*found = append(*found, fullPath)
		}
	}
}
