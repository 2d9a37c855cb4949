package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domerrors "github.com/margdarshak/margdarshak-go/internal/errors"
)

func TestSaveAndLoadColleges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colleges.json")
	colleges := []College{
		{Name: "COEP", Location: "Pune, Maharashtra", Courses: Many("B.Tech"), Website: "https://www.coep.org.in/?q=1&r=2"},
		{Name: "विद्यापीठ", Rating: "NIRF rank 19"},
	}

	if err := SaveColleges(path, colleges); err != nil {
		t.Fatalf("SaveColleges() failed: %v", err)
	}

	loaded, err := LoadColleges(path)
	if err != nil {
		t.Fatalf("LoadColleges() failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len = %d, want 2", len(loaded))
	}
	if loaded[0].Name != "COEP" || loaded[1].Name != "विद्यापीठ" {
		t.Errorf("got %+v", loaded)
	}
	if got := loaded[0].Courses.Values(); len(got) != 1 || got[0] != "B.Tech" {
		t.Errorf("Courses = %v", got)
	}
}

func TestSaveCollegesIsHumanReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colleges.json")
	if err := SaveColleges(path, []College{{Name: "X", Website: "https://x.in/?a=1&b=2"}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "\n  ") {
		t.Error("catalog should be pretty-printed")
	}
	// SetEscapeHTML(false) keeps URLs readable
	if strings.Contains(string(data), `\u0026`) || !strings.Contains(string(data), "&") {
		t.Errorf("ampersands should not be escaped: %s", data)
	}
}

func TestSaveCollegesCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "colleges.json")
	if err := SaveColleges(path, []College{{Name: "X"}}); err != nil {
		t.Fatalf("SaveColleges() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("catalog file missing: %v", err)
	}
}

func TestLoadCollegesErrors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadColleges(filepath.Join(t.TempDir(), "absent.json"))
		var derr *domerrors.DataLoadError
		if !errors.As(err, &derr) {
			t.Errorf("expected DataLoadError, got %v", err)
		}
	})

	t.Run("Corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.json")
		if err := os.WriteFile(path, []byte("[{"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadColleges(path)
		var derr *domerrors.DataLoadError
		if !errors.As(err, &derr) {
			t.Errorf("expected DataLoadError, got %v", err)
		}
	})
}

func TestCatalogReplaceAndSnapshot(t *testing.T) {
	c := NewCatalog([]College{{Name: "A"}})

	if c.Len() != 1 {
		t.Fatalf("Len = %d", c.Len())
	}

	c.Replace([]College{{Name: "B"}, {Name: "C"}})

	snap := c.Snapshot()
	if len(snap) != 2 || snap[0].Name != "B" {
		t.Errorf("got %+v", snap)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
