// Package extract aggregates quizzes from markdown trees for QTI export.
package extract

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quizmd/quizmd/internal/quiz"
)

// FromFile extracts every parseable quiz from one markdown file, tagging each
// with its source file and the 1-based line of the opening tag. Blocks that
// fail to parse are logged and dropped.
func FromFile(path string) ([]quiz.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	masked, _ := quiz.MaskCodeBlocks(string(data))

	var quizzes []quiz.Quiz
	for i, block := range quiz.ScanBlocks(masked, quiz.StartTag, quiz.EndTag) {
		line := strings.Count(masked[:block.Start], "\n") + 1
		q, err := quiz.ParseCheckbox(block.Inner)
		if err != nil {
			slog.Warn("skipping malformed quiz block",
				"file", path, "line", line, "quiz", i, "err", err)
			continue
		}
		q.SourceFile = path
		q.SourceLine = line
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

// FromDirectory extracts quizzes from every file under dir matching pattern
// (a filepath.Match pattern against the base name, e.g. "*.md"). Files appear
// in lexicographic path order and quizzes keep their in-file order, so the
// collection order is stable across runs. Unreadable files are skipped.
func FromDirectory(dir string, recursive bool, pattern string) (quiz.Collection, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return quiz.Collection{}, fmt.Errorf("not a directory: %s", dir)
	}

	files, err := matchFiles(dir, recursive, pattern)
	if err != nil {
		return quiz.Collection{}, err
	}
	sort.Strings(files)

	collection := quiz.NewCollection(
		fmt.Sprintf("Quizzes from %s", filepath.Base(dir)),
		fmt.Sprintf("Exported from %d markdown files", len(files)),
	)
	for _, path := range files {
		quizzes, err := FromFile(path)
		if err != nil {
			slog.Warn("skipping unreadable file", "file", path, "err", err)
			continue
		}
		for _, q := range quizzes {
			collection.Add(q)
		}
	}
	return collection, nil
}

func matchFiles(dir string, recursive bool, pattern string) ([]string, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if ok, _ := filepath.Match(pattern, e.Name()); ok {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		return files, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
