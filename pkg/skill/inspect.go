// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"archive/zip"
	"fmt"
)

// ArchiveEntry describes one member of a skill archive.
type ArchiveEntry struct {
	Name           string `json:"name" yaml:"name"`
	Size           uint64 `json:"size" yaml:"size"`
	CompressedSize uint64 `json:"compressed_size" yaml:"compressed_size"`
	Deflated       bool   `json:"deflated" yaml:"deflated"`
}

// Inspect lists the members of the archive at archivePath in stored order.
func Inspect(archivePath string) (entries []ArchiveEntry, err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	entries = make([]ArchiveEntry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, ArchiveEntry{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Deflated:       f.Method == zip.Deflate,
		})
	}
	return entries, nil
}
