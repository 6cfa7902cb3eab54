package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tacogips/rmmkit/internal/logger"
	"github.com/tacogips/rmmkit/internal/script/extract"
	"github.com/tacogips/rmmkit/internal/script/model"
)

// CollectOptions selects the local script files to read.
type CollectOptions struct {
	// Files are explicit script paths. When empty, Dir is scanned.
	Files []string
	// Dir is scanned recursively when no files are given.
	Dir string
}

// CollectResult holds the extracted local scripts.
type CollectResult struct {
	// Scripts is the extracted metadata, sorted by path.
	Scripts []model.ScriptMetadata
	// Skipped lists paths that were not script files or duplicated a name.
	Skipped []string
}

// CollectScripts reads and extracts metadata from local script files.
func CollectScripts(ctx context.Context, opts CollectOptions) (*CollectResult, error) {
	logger.DebugSection("[app] CollectScripts start")

	var paths []string
	var err error
	if len(opts.Files) > 0 {
		paths, err = checkFiles(opts.Files)
	} else {
		paths, err = scanScriptDir(ctx, opts.Dir)
	}
	if err != nil {
		return nil, err
	}

	result := &CollectResult{Scripts: []model.ScriptMetadata{}}
	seen := make(map[string]string)

	for _, p := range paths {
		if _, ok := model.LanguageForPath(p); !ok {
			logger.Warn("skipping %s: not a supported script type", p)
			result.Skipped = append(result.Skipped, p)
			continue
		}

		meta, err := extract.ExtractFile(p)
		if err != nil {
			return nil, NewCollectError("failed to read script", err)
		}

		if first, dup := seen[meta.Name]; dup {
			logger.Warn("skipping %s: script name %q already used by %s", p, meta.Name, first)
			result.Skipped = append(result.Skipped, p)
			continue
		}
		seen[meta.Name] = p

		logger.Debug("[app] extracted %s: %d parameters", meta.Name, len(meta.Parameters))
		result.Scripts = append(result.Scripts, *meta)
	}

	logger.DebugValue("[app] Scripts collected", len(result.Scripts))
	return result, nil
}

// checkFiles verifies explicit paths exist and are regular files.
func checkFiles(files []string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return nil, NewCollectError(fmt.Sprintf("script not found: %s", f), err)
		}
		if info.IsDir() {
			return nil, NewCollectError(fmt.Sprintf("path is a directory: %s", f), nil)
		}
		paths = append(paths, f)
	}
	return paths, nil
}

// scanScriptDir walks dir and returns every regular file, skipping hidden
// files and directories.
func scanScriptDir(ctx context.Context, dir string) ([]string, error) {
	if dir == "" {
		return nil, NewValidationError("no script files or directory given", nil)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, NewCollectError(fmt.Sprintf("scripts directory not found: %s", dir), err)
	}
	if !info.IsDir() {
		return nil, NewCollectError(fmt.Sprintf("path is not a directory: %s", dir), nil)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, NewCollectError(fmt.Sprintf("failed to scan %s", dir), err)
	}

	sort.Strings(paths)
	return paths, nil
}
