package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

const globMetaChars = "*?[{"

// ListFiles lists non-dir files or first level files under the directories in the given path or path pattern
//
// Directories matched by a recursive pattern are still walked for deeper matches
//
// Patterns follow github.com/gobwas/glob with '/' as separator: "*" matches within a directory level and "**"
// across levels, e.g. "/data/**/*.ndjson.gz"
func ListFiles(directoryOrFilePattern string) ([]string, error) {
	if !strings.ContainsAny(directoryOrFilePattern, globMetaChars) {
		return listFilesAt(directoryOrFilePattern)
	}

	pattern := filepath.ToSlash(filepath.Clean(directoryOrFilePattern))
	matcher, gerr := glob.Compile(pattern, '/')
	if gerr != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", directoryOrFilePattern, gerr)
	}
	recursive := strings.Contains(pattern, "**")
	maxDepth := strings.Count(pattern, "/")
	root := staticPrefixDir(pattern)
	pathList := make([]string, 0, 100)
	werr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		slashPath := filepath.ToSlash(path)
		if !matcher.Match(slashPath) {
			if entry.IsDir() && !recursive && path != root && strings.Count(slashPath, "/") >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			subList, lerr := listFilesAt(path)
			if lerr != nil {
				return lerr
			}
			pathList = append(pathList, subList...)
			if recursive {
				// deeper levels may still match "**"
				return nil
			}
			return fs.SkipDir
		}
		pathList = append(pathList, path)
		return nil
	})
	if werr != nil {
		return nil, werr
	}
	sort.Strings(pathList)
	return lo.Uniq(pathList), nil
}

// listFilesAt lists the file itself or the files directly under the directory
func listFilesAt(path string) ([]string, error) {
	stat, serr := os.Stat(path)
	if serr != nil {
		return nil, serr
	}
	if !stat.IsDir() {
		return []string{path}, nil
	}
	entries, rerr := os.ReadDir(path)
	if rerr != nil {
		return nil, rerr
	}
	pathList := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			pathList = append(pathList, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(pathList)
	return pathList, nil
}

// staticPrefixDir returns the deepest directory of pattern not containing any glob meta character
func staticPrefixDir(pattern string) string {
	metaPos := strings.IndexAny(pattern, globMetaChars)
	sepPos := strings.LastIndex(pattern[:metaPos], "/")
	switch {
	case sepPos == -1:
		return "."
	case sepPos == 0:
		return "/"
	default:
		return pattern[:sepPos]
	}
}
