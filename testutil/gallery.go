// Package testutil provides shared fixtures for hito tests.
//
// LoadGallery returns a small, fixed image collection with an assignment map
// that covers the interesting cases: mixed-case names, a nested path, an
// unknown size, unknown and unparsable creation dates, an image assigned
// twice, an assignment with an unparsable timestamp, an explicit empty
// assignment list and images absent from the map.
package testutil

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iomz/hito/types"
)

//go:embed testdata/gallery.json
var galleryJSON []byte

// Gallery provides typed access to the fixture records
type Gallery struct {
	Zebra     types.ImageRecord // 10 KiB, created 2024-03-01, "animals" on 2024-01-03
	Apple     types.ImageRecord // 5 KiB, created 2024-01-15, "fruit" 2024-01-01 and "favorites" 2024-01-05
	Banana    types.ImageRecord // 1 KiB, no created date, "fruit" with an unparsable timestamp
	Cherry    types.ImageRecord // unknown size, under sub/, created 2024-02-10, not in the map
	DateNight types.ImageRecord // 20 KiB, unparsable created date, not in the map
	ApplePie  types.ImageRecord // 2 KiB, created 2023-12-31, empty assignment list

	// Records holds every image in fixture order
	Records []types.ImageRecord

	// Assignments is the category assignment map of the fixture
	Assignments types.AssignmentMap
}

type galleryFixture struct {
	Images      []types.ImageRecord `json:"images"`
	Assignments types.AssignmentMap `json:"assignments"`
}

// LoadGallery parses the embedded fixture. Every call returns fresh copies.
func LoadGallery(t *testing.T) *Gallery {
	t.Helper()

	var fixture galleryFixture
	if err := json.Unmarshal(galleryJSON, &fixture); err != nil {
		t.Fatalf("failed to parse gallery fixture: %v", err)
	}
	if len(fixture.Images) != 6 {
		t.Fatalf("gallery fixture should contain 6 images, got %d", len(fixture.Images))
	}

	return &Gallery{
		Zebra:       fixture.Images[0],
		Apple:       fixture.Images[1],
		Banana:      fixture.Images[2],
		Cherry:      fixture.Images[3],
		DateNight:   fixture.Images[4],
		ApplePie:    fixture.Images[5],
		Records:     fixture.Images,
		Assignments: fixture.Assignments,
	}
}

// Paths returns the paths of records in order
func Paths(records []types.ImageRecord) []string {
	paths := make([]string, len(records))
	for i, r := range records {
		paths[i] = r.Path
	}
	return paths
}

// Names returns the file names of records in order
func Names(records []types.ImageRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = filepath.Base(r.Path)
	}
	return names
}

// WriteFile creates dir/name filled with size bytes and returns its path
func WriteFile(t *testing.T, dir, name string, size int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
