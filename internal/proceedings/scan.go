// Package proceedings walks a proceedings archive: one folder per
// conference year, papers as PDFs, optionally a metadata workbook
// exported from the publisher.
package proceedings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FolderReport describes one proceedings folder.
type FolderReport struct {
	Name string
	// PDFs is the number of paper files in the folder.
	PDFs int
	// MetadataFile is the metadata-*.xlsx workbook name, empty when the
	// folder has none (those papers need title extraction from text).
	MetadataFile string
	// Year is the publication year derived from the folder name, zero
	// when the folder is not a known volume.
	Year int
}

// Report aggregates a scan over the archive root.
type Report struct {
	Folders         []FolderReport
	TotalPDFs       int
	WithMetadata    int
	WithoutMetadata int
}

// Scan inspects every direct subfolder of root. Only counts and metadata
// presence are gathered; no PDF is opened.
func Scan(root string) (*Report, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("proceedings: scan %s: %w", root, err)
	}
	rep := &Report{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		fr := FolderReport{Name: entry.Name(), Year: YearForFolder(entry.Name())}

		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("proceedings: scan %s: %w", dir, err)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			name := strings.ToLower(f.Name())
			switch {
			case strings.HasSuffix(name, ".pdf"):
				fr.PDFs++
			case strings.HasPrefix(name, "metadata-") && strings.HasSuffix(name, ".xlsx"):
				fr.MetadataFile = f.Name()
			}
		}

		rep.Folders = append(rep.Folders, fr)
		rep.TotalPDFs += fr.PDFs
		if fr.MetadataFile != "" {
			rep.WithMetadata++
		} else {
			rep.WithoutMetadata++
		}
	}
	return rep, nil
}

// ListPDFs returns the paths of all PDF files directly inside dir.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("proceedings: list %s: %w", dir, err)
	}
	var pdfs []string
	for _, f := range entries {
		if f.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(f.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, f.Name()))
		}
	}
	return pdfs, nil
}
