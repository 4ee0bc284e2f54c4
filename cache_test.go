package folio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/folio/content"
)

const testDoc = `{
  "profile": {
    "name": {"ar": "أسامة", "en": "Osama"},
    "title": {"ar": "مطور", "en": "Developer"},
    "summary": {"ar": "نبذة", "en": "About me"},
    "email": "me@example.com"
  },
  "experience": [],
  "skills": [{"ar": "برمجة", "en": "Coding"}],
  "certificates": [],
  "projects": [{"title": {"ar": "مشروع", "en": "Project"}, "desc": {"ar": "", "en": "Thing"}, "link": "https://example.com/p"}]
}`

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestContentCacheClonesAndReloads(t *testing.T) {
	path := writeDoc(t, testDoc)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewContentCache(content.NewLoader(path, 0), time.Minute)
	cache.now = clock.now
	loads := 0
	cache.onLoad = func([]byte) { loads++ }
	ctx := context.Background()

	doc, err := cache.Document(ctx)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	doc.Skills = nil

	again, err := cache.Document(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Skills) != 1 {
		t.Fatal("mutating a returned document changed the cache")
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1 within the TTL", loads)
	}

	clock.advance(2 * time.Minute)
	if _, err := cache.Document(ctx); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Errorf("loads = %d, want a reload after the TTL", loads)
	}

	cache.Invalidate()
	if _, err := cache.Document(ctx); err != nil {
		t.Fatal(err)
	}
	if loads != 3 {
		t.Errorf("loads = %d, want a reload after Invalidate", loads)
	}
}

func TestContentCacheReplace(t *testing.T) {
	cache := NewContentCache(content.NewLoader(writeDoc(t, testDoc), 0), time.Hour)
	doc := &content.Document{Skills: []content.Text{content.Scalar("Go"), content.Scalar("SQL")}}
	cache.Replace(doc)
	doc.Skills = nil

	got, err := cache.Document(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Skills) != 2 {
		t.Errorf("skills = %v, want the replaced document", got.Skills)
	}
}

func TestContentCacheLoadError(t *testing.T) {
	cache := NewContentCache(content.NewLoader(writeDoc(t, "{broken"), 0), time.Hour)
	_, err := cache.Document(context.Background())
	var le *content.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}
