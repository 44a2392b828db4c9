package livesearch

import (
	"errors"
	"testing"

	"github.com/later-app/laterd/internal/domain"
	"github.com/later-app/laterd/internal/domain/content"
)

func TestFiltersKindValidation(t *testing.T) {
	var f Filters

	if err := f.SetKinds([]content.Kind{content.KindNote, content.KindListItem}); err != nil {
		t.Fatalf("valid kinds rejected: %v", err)
	}
	err := f.SetKinds([]content.Kind{content.KindNote, content.Kind("bookmark")})
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	// A rejected set leaves the previous restriction intact.
	if kinds := f.Kinds(); len(kinds) != 2 {
		t.Fatalf("expected previous kinds preserved, got %v", kinds)
	}
}

func TestFiltersNilVersusEmptyKinds(t *testing.T) {
	var f Filters

	if f.HasActive() {
		t.Fatal("zero-value filters must be inactive")
	}

	if err := f.SetKinds([]content.Kind{}); err != nil {
		t.Fatalf("empty kind set rejected: %v", err)
	}
	if !f.HasActive() {
		t.Fatal("empty non-nil kind set is an active filter")
	}
	if kinds := f.Kinds(); kinds == nil || len(kinds) != 0 {
		t.Fatalf("expected empty non-nil kinds, got %v", kinds)
	}

	if err := f.SetKinds(nil); err != nil {
		t.Fatalf("nil kinds rejected: %v", err)
	}
	if f.Kinds() != nil {
		t.Fatal("nil must restore the all-kinds default")
	}
	if f.HasActive() {
		t.Fatal("nil kinds and no tags must be inactive")
	}
}

func TestFiltersReset(t *testing.T) {
	var f Filters
	if err := f.SetKinds([]content.Kind{content.KindTodoItem}); err != nil {
		t.Fatalf("SetKinds: %v", err)
	}
	f.SetTags([]string{"urgent"})
	if !f.HasActive() {
		t.Fatal("expected active filters")
	}

	f.Reset()
	if f.HasActive() || f.Kinds() != nil || f.Tags() != nil {
		t.Fatalf("reset left residue: kinds=%v tags=%v", f.Kinds(), f.Tags())
	}
}

func TestFiltersAccessorsCopy(t *testing.T) {
	var f Filters
	if err := f.SetKinds([]content.Kind{content.KindNote}); err != nil {
		t.Fatalf("SetKinds: %v", err)
	}
	f.SetTags([]string{"work"})

	f.Kinds()[0] = content.KindList
	f.Tags()[0] = "mutated"

	if f.Kinds()[0] != content.KindNote || f.Tags()[0] != "work" {
		t.Fatal("accessors must return copies")
	}
}
