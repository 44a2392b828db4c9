package result

import (
	"testing"
	"time"

	"github.com/later-app/laterd/internal/domain/content"
)

func TestNewContainerResult(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rec := content.Note{ID: "n1", Title: "tax notes"}
	r := New("n1", content.KindNote, "tax notes", "", "file the returns",
		[]string{"finance"}, now, rec)

	if r.ID() != "n1" || r.Kind() != content.KindNote {
		t.Errorf("identity = %s %s", r.ID(), r.Kind())
	}
	if !r.UpdatedAt().Equal(now) {
		t.Errorf("updatedAt = %v", r.UpdatedAt())
	}
	if r.IsChildItem() {
		t.Error("container result must not be a child item")
	}
	if r.ParentID() != "" || r.ParentName() != "" {
		t.Errorf("container carries parent linkage: %q %q", r.ParentID(), r.ParentName())
	}
	if _, ok := r.Record().(content.Note); !ok {
		t.Errorf("record type = %T", r.Record())
	}
}

func TestNewChildUsesParentTimestamp(t *testing.T) {
	itemKind := content.KindTodoItem
	parentTime := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r, err := NewChild("t1", itemKind, "file taxes", "Errands", "",
		nil, "tl-1", "Errands", parentTime, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.UpdatedAt().Equal(parentTime) {
		t.Errorf("updatedAt = %v, want parent %v", r.UpdatedAt(), parentTime)
	}
	if !r.IsChildItem() {
		t.Error("child kind must report IsChildItem")
	}
	if r.ParentID() != "tl-1" || r.ParentName() != "Errands" {
		t.Errorf("parent linkage = %q %q", r.ParentID(), r.ParentName())
	}
}

func TestNewChildRejectsMissingLinkage(t *testing.T) {
	now := time.Now()

	if _, err := NewChild("t1", content.KindTodoItem, "x", "", "", nil, "", "Errands", now, nil); err == nil {
		t.Error("expected error for missing parent id")
	}
	if _, err := NewChild("t1", content.KindListItem, "x", "", "", nil, "l-1", "", now, nil); err == nil {
		t.Error("expected error for missing parent name")
	}
}
