package folio

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/folio/publish"
	"github.com/eringen/folio/views"
)

func setupTestStore(t *testing.T, retention int) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "folio.db"), retention)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t, 5)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestLatestBackup(t *testing.T) {
	s := setupTestStore(t, 5)
	ctx := context.Background()

	if _, ok, err := s.LatestBackup(ctx, "me/site"); err != nil || ok {
		t.Fatalf("expected no backup, got ok=%v err=%v", ok, err)
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, body := range []string{`{"v":1}`, `{"v":2}`} {
		b := publish.Backup{
			ID:         fmt.Sprintf("b%d", i),
			Repository: "me/site",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			Body:       []byte(body),
		}
		if err := s.SaveBackup(ctx, b); err != nil {
			t.Fatalf("SaveBackup: %v", err)
		}
	}
	if err := s.SaveBackup(ctx, publish.Backup{ID: "other", Repository: "you/site", CreatedAt: base.Add(time.Hour), Body: []byte(`{}`)}); err != nil {
		t.Fatalf("SaveBackup: %v", err)
	}

	got, ok, err := s.LatestBackup(ctx, "me/site")
	if err != nil || !ok {
		t.Fatalf("LatestBackup: ok=%v err=%v", ok, err)
	}
	if got.ID != "b1" || string(got.Body) != `{"v":2}` {
		t.Errorf("latest = %s %s, want b1", got.ID, got.Body)
	}
	if !got.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("CreatedAt = %v", got.CreatedAt)
	}
}

func TestBackupsArePruned(t *testing.T) {
	s := setupTestStore(t, 3)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		b := publish.Backup{
			ID:         fmt.Sprintf("b%d", i),
			Repository: "me/site",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
			Body:       []byte("{}"),
		}
		if err := s.SaveBackup(ctx, b); err != nil {
			t.Fatalf("SaveBackup %d: %v", i, err)
		}
	}

	list, err := s.ListBackups(ctx, "me/site")
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("kept %d backups, want 3", len(list))
	}
	for i, want := range []string{"b5", "b4", "b3"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}
}

func TestImages(t *testing.T) {
	s := setupTestStore(t, 5)

	img := views.Image{Filename: "me.jpg", OriginalName: "Me.JPG", Width: 800, Height: 600, Size: 1024, UploadedAt: "2024-03-01T12:00:00Z"}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	img.Width = 640
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage upsert: %v", err)
	}

	exists, err := s.ImageExists("me.jpg")
	if err != nil || !exists {
		t.Fatalf("ImageExists = %v, %v", exists, err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(images) != 1 || images[0].Width != 640 {
		t.Fatalf("images = %+v", images)
	}

	if err := s.DeleteImage("me.jpg"); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	if exists, _ := s.ImageExists("me.jpg"); exists {
		t.Error("image still recorded after delete")
	}
}
