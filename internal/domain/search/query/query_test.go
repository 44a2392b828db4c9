package query

import (
	"testing"

	"github.com/later-app/laterd/internal/domain/content"
)

func TestNewTrimsPhraseAndDefaults(t *testing.T) {
	q := New("  tax returns  ", "space-1")
	if q.Phrase() != "tax returns" {
		t.Errorf("phrase = %q", q.Phrase())
	}
	if q.SpaceID() != "space-1" {
		t.Errorf("spaceID = %q", q.SpaceID())
	}
	if q.Limit() != DefaultLimit || q.Offset() != 0 {
		t.Errorf("window = %d/%d", q.Limit(), q.Offset())
	}
	if q.Kinds() != nil {
		t.Errorf("kinds must default to nil, got %v", q.Kinds())
	}
}

func TestWithKindsPreservesNilVersusEmpty(t *testing.T) {
	base := New("x", "space-1")

	if got := base.WithKinds(nil).Kinds(); got != nil {
		t.Errorf("nil kinds became %v", got)
	}

	empty := base.WithKinds([]content.Kind{})
	if got := empty.Kinds(); got == nil || len(got) != 0 {
		t.Errorf("empty kinds became %v", got)
	}

	restricted := base.WithKinds([]content.Kind{content.KindNote})
	if got := restricted.Kinds(); len(got) != 1 || got[0] != content.KindNote {
		t.Errorf("kinds = %v", got)
	}
}

func TestWithKindsCopiesInput(t *testing.T) {
	input := []content.Kind{content.KindNote}
	q := New("x", "space-1").WithKinds(input)
	input[0] = content.KindList
	if q.Kinds()[0] != content.KindNote {
		t.Error("query must not alias the caller's slice")
	}
}

func TestWithLimitClamps(t *testing.T) {
	base := New("x", "space-1")

	if got := base.WithLimit(0).Limit(); got != DefaultLimit {
		t.Errorf("limit 0 -> %d, want %d", got, DefaultLimit)
	}
	if got := base.WithLimit(-5).Limit(); got != DefaultLimit {
		t.Errorf("limit -5 -> %d, want %d", got, DefaultLimit)
	}
	if got := base.WithLimit(MaxLimit + 100).Limit(); got != MaxLimit {
		t.Errorf("oversized limit -> %d, want %d", got, MaxLimit)
	}
	if got := base.WithLimit(7).Limit(); got != 7 {
		t.Errorf("limit 7 -> %d", got)
	}
}

func TestWithOffsetResetsNegative(t *testing.T) {
	if got := New("x", "space-1").WithOffset(-1).Offset(); got != 0 {
		t.Errorf("offset -1 -> %d", got)
	}
}

func TestDerivationDoesNotMutateOriginal(t *testing.T) {
	base := New("x", "space-1").WithLimit(10)
	derived := base.WithPhrase("y").WithLimit(20).WithOffset(5)

	if base.Phrase() != "x" || base.Limit() != 10 || base.Offset() != 0 {
		t.Errorf("base mutated: %q %d/%d", base.Phrase(), base.Limit(), base.Offset())
	}
	if derived.Phrase() != "y" || derived.Limit() != 20 || derived.Offset() != 5 {
		t.Errorf("derived = %q %d/%d", derived.Phrase(), derived.Limit(), derived.Offset())
	}
}

func TestActiveKinds(t *testing.T) {
	base := New("x", "space-1")

	all := base.ActiveKinds()
	if len(all) != len(content.All()) {
		t.Errorf("unrestricted ActiveKinds = %v", all)
	}

	none := base.WithKinds([]content.Kind{}).ActiveKinds()
	if len(none) != 0 {
		t.Errorf("empty restriction ActiveKinds = %v", none)
	}

	one := base.WithKinds([]content.Kind{content.KindListItem}).ActiveKinds()
	if len(one) != 1 || one[0] != content.KindListItem {
		t.Errorf("restricted ActiveKinds = %v", one)
	}
}

func TestFetchWindowWidensLimit(t *testing.T) {
	q := New("x", "space-1").WithLimit(10).WithOffset(20)
	fetch := q.FetchWindow()

	if fetch.Limit() != 30 || fetch.Offset() != 0 {
		t.Errorf("fetch window = %d/%d, want 30/0", fetch.Limit(), fetch.Offset())
	}
	// The original keeps its pagination for the post-merge window.
	if q.Limit() != 10 || q.Offset() != 20 {
		t.Errorf("original mutated: %d/%d", q.Limit(), q.Offset())
	}
}
