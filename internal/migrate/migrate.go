// Package migrate rewrites legacy <?quiz?> key/value blocks into the current
// checkbox dialect. It is a one-time tool: the main pipeline only reads the
// checkbox dialect.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quizmd/quizmd/internal/quiz"
)

type FileResult struct {
	Path    string
	Quizzes int
}

type Summary struct {
	Files            []FileResult
	FilesModified    int
	QuizzesConverted int
}

// ConvertDocument rewrites every legacy quiz block in a document, leaving all
// surrounding text byte-for-byte intact.
func ConvertDocument(content string) (string, int) {
	blocks := quiz.ScanBlocks(content, quiz.LegacyStartTag, quiz.LegacyEndTag)
	if len(blocks) == 0 {
		return content, 0
	}

	var out strings.Builder
	last := 0
	for _, b := range blocks {
		out.WriteString(content[last:b.Start])
		out.WriteString(quiz.ParseLegacy(b.Inner).Checkbox())
		last = b.End
	}
	out.WriteString(content[last:])
	return out.String(), len(blocks)
}

// File migrates one markdown file in place. With dryRun the file is left
// untouched and only the would-be conversion count is reported.
func File(path string, dryRun bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	converted, n := ConvertDocument(string(data))
	if n == 0 || converted == string(data) {
		return 0, nil
	}
	if !dryRun {
		if err := os.WriteFile(path, []byte(converted), 0o644); err != nil {
			return 0, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return n, nil
}

// Directory migrates every *.md file under dir, recursively, in sorted path
// order. Files that fail to read or write are reported inside the error.
func Directory(dir string, dryRun bool) (Summary, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Summary{}, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	err = filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.HasSuffix(path, ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	sort.Strings(files)

	var sum Summary
	for _, path := range files {
		n, err := File(path, dryRun)
		if err != nil {
			return sum, err
		}
		if n > 0 {
			sum.Files = append(sum.Files, FileResult{Path: path, Quizzes: n})
			sum.FilesModified++
			sum.QuizzesConverted += n
		}
	}
	return sum, nil
}
