package services

import (
	"context"
	"testing"

	"github.com/petilan/petilan_category_service/models"
	"github.com/pkg/errors"
)

func TestGetRootsIsCachedUntilMutation(t *testing.T) {
	svc, store, _ := newTestService()

	mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Dogs"})

	roots, err := svc.GetRoots(context.Background())
	if err != nil {
		t.Fatalf("roots: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(roots))
	}

	// a write bypassing the service is invisible until invalidation
	store.categories["rogue"] = &models.Category{
		Id: "rogue", Name: "Rogue", Slug: "rogue", Active: true,
	}

	roots, _ = svc.GetRoots(context.Background())
	if len(roots) != 1 {
		t.Fatalf("cached view changed without invalidation: %d roots", len(roots))
	}

	// a service mutation drops the cached view
	mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Cats"})

	roots, _ = svc.GetRoots(context.Background())
	if len(roots) != 3 {
		t.Fatalf("got %d roots after invalidation, want 3", len(roots))
	}
}

func TestGetTreeHidesInactiveSubtree(t *testing.T) {
	svc, _, _ := newTestService()

	dogs := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Dogs"})
	puppies := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Puppies", ParentId: &dogs.Id})
	mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Small Puppies", ParentId: &puppies.Id})

	tree, err := svc.GetTree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 1 || len(tree[0].Children) != 1 || len(tree[0].Children[0].Children) != 1 {
		t.Fatalf("unexpected tree shape before deactivation")
	}

	if _, err := svc.DeactivateCategory(context.Background(), puppies.Id); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	tree, err = svc.GetTree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree[0].Children) != 0 {
		t.Fatalf("inactive subtree still visible: %d children", len(tree[0].Children))
	}
}

func TestGetChildrenOfMissingCategory(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetChildren(context.Background(), "missing")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestGetBreadcrumb(t *testing.T) {
	svc, _, _ := newTestService()

	dogs := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Dogs"})
	puppies := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Puppies", ParentId: &dogs.Id})
	small := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Small Puppies", ParentId: &puppies.Id})

	breadcrumb, err := svc.GetBreadcrumb(context.Background(), small.Id)
	if err != nil {
		t.Fatalf("breadcrumb: %v", err)
	}

	want := []string{"Dogs", "Puppies", "Small Puppies"}
	if len(breadcrumb) != len(want) {
		t.Fatalf("got %d items, want %d", len(breadcrumb), len(want))
	}
	for i, item := range breadcrumb {
		if item.Name != want[i] {
			t.Errorf("breadcrumb[%d] = %q, want %q", i, item.Name, want[i])
		}
	}
}

func TestBreadcrumbRefreshesAfterMove(t *testing.T) {
	svc, _, _ := newTestService()

	dogs := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Dogs"})
	cats := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Cats"})
	toys := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Toys", ParentId: &dogs.Id})

	if _, err := svc.GetBreadcrumb(context.Background(), toys.Id); err != nil {
		t.Fatalf("breadcrumb: %v", err)
	}

	if _, err := svc.UpdateCategory(context.Background(), toys.Id, &models.UpdateCategoryRequest{
		Name: "Toys", ParentId: &cats.Id,
	}); err != nil {
		t.Fatalf("move: %v", err)
	}

	breadcrumb, err := svc.GetBreadcrumb(context.Background(), toys.Id)
	if err != nil {
		t.Fatalf("breadcrumb after move: %v", err)
	}
	if breadcrumb[0].Name != "Cats" {
		t.Fatalf("breadcrumb root = %q, want Cats", breadcrumb[0].Name)
	}
}

func TestGetPopular(t *testing.T) {
	svc, store, _ := newTestService()

	a := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Dogs"})
	b := mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Cats"})
	mustCreate(t, svc, &models.CreateCategoryRequest{Name: "Fish"})

	store.categories[a.Id].UsageCount = 3
	store.categories[b.Id].UsageCount = 9

	popular, err := svc.GetPopular(context.Background(), 0)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}

	if len(popular) != 2 {
		t.Fatalf("got %d popular, want 2 (zero usage excluded)", len(popular))
	}
	if popular[0].Name != "Cats" || popular[1].Name != "Dogs" {
		t.Fatalf("wrong order: %s, %s", popular[0].Name, popular[1].Name)
	}
}
