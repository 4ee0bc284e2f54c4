package folio

import (
	"testing"
	"time"

	"github.com/eringen/folio/content"
)

func TestWorkspacesLifecycle(t *testing.T) {
	ws := NewWorkspaces(time.Hour)
	defer ws.Stop()

	id := ws.Open(&content.Document{Skills: []content.Text{content.Scalar("Go")}})
	w, ok := ws.Get(id)
	if !ok {
		t.Fatal("workspace not found after Open")
	}

	snap := w.Snapshot()
	snap.Skills = nil
	if err := w.Apply(func(doc *content.Document) error {
		doc.Skills = append(doc.Skills, content.Scalar("SQL"))
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if got := w.Snapshot().Skills; len(got) != 2 {
		t.Errorf("skills = %v, want 2 after Apply", got)
	}

	w.Replace(&content.Document{})
	if got := w.Snapshot().Skills; len(got) != 0 {
		t.Errorf("skills = %v after Replace", got)
	}

	ws.Drop(id)
	if _, ok := ws.Get(id); ok {
		t.Error("workspace still present after Drop")
	}
	if _, ok := ws.Get(""); ok {
		t.Error("empty id resolved")
	}
}

func TestWorkspacesSweepIdle(t *testing.T) {
	ws := NewWorkspaces(time.Hour)
	defer ws.Stop()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	ws.now = clock.now

	idle := ws.Open(&content.Document{})
	clock.advance(50 * time.Minute)
	active := ws.Open(&content.Document{})

	clock.advance(20 * time.Minute)
	ws.Get(active)
	ws.Sweep()

	if _, ok := ws.Get(idle); ok {
		t.Error("idle workspace survived the sweep")
	}
	if _, ok := ws.Get(active); !ok {
		t.Error("active workspace was swept")
	}
	if ws.Len() != 1 {
		t.Errorf("Len = %d, want 1", ws.Len())
	}
}
