package query

import (
	"testing"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
)

func TestProjectKeepsSelectedFieldsAndID(t *testing.T) {
	items := []entity.Bootcamp{{ID: "b1", Name: "Devworks", Description: "d", Photo: "p.jpg"}}
	out, err := Project(items, []string{"name"})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	m, ok := out[0].(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", out[0])
	}
	if len(m) != 2 || m["id"] != "b1" || m["name"] != "Devworks" {
		t.Fatalf("unexpected projection %v", m)
	}
}

func TestProjectWithoutSelectionReturnsItems(t *testing.T) {
	items := []entity.Course{{ID: "c1"}, {ID: "c2"}}
	out, err := Project(items, nil)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if _, ok := out[0].(entity.Course); !ok {
		t.Fatalf("expected entity.Course, got %T", out[0])
	}
}
