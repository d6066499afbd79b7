package policy

import "testing"

func TestSharedOrOwner_FilterFor(t *testing.T) {
	p := NewSharedOrOwner()

	expr, err := p.FilterFor("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	should := expr.Should()
	if len(should) != 2 {
		t.Fatalf("expected 2 should conditions, got %d", len(should))
	}
	if should[0].Key() != FieldUploadedBy || should[0].Match() != "user-1" {
		t.Errorf("unexpected owner condition: %s=%s", should[0].Key(), should[0].Match())
	}
	if should[1].Key() != FieldVisibility || should[1].Match() != VisibilityShared {
		t.Errorf("unexpected visibility condition: %s=%s", should[1].Key(), should[1].Match())
	}
	if len(expr.Must()) != 0 || len(expr.MustNot()) != 0 {
		t.Error("expected empty must and must_not groups")
	}
}

func TestSharedOrOwner_EmptyUser(t *testing.T) {
	p := NewSharedOrOwner()

	if _, err := p.FilterFor(""); err == nil {
		t.Fatal("expected error for empty user id")
	}
}
