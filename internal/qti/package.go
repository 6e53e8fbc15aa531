package qti

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// BuildPackage assembles the exporter's documents into a zip archive in
// memory: imsmanifest.xml, assessment.xml and one items/<id>.xml per quiz.
func BuildPackage(e Exporter) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		return nil
	}

	if err := write("imsmanifest.xml", e.Manifest()); err != nil {
		return nil, err
	}
	if err := write("assessment.xml", e.Assessment()); err != nil {
		return nil, err
	}

	items := e.Items()
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := write(name, items[name]); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePackage builds the archive and moves it to path via a temp file and
// rename, so a crashed export never leaves a truncated package behind.
func WritePackage(e Exporter, path string) error {
	pkg, err := BuildPackage(e)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".qti-export-*.zip")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(pkg); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
