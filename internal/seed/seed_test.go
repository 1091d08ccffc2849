package seed

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/store"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCollections_CoverEveryResource(t *testing.T) {
	data := Collections(now)
	for _, name := range catalog.Names() {
		records, ok := data[name]
		if !ok || len(records) == 0 {
			t.Errorf("no seed data for %s", name)
			continue
		}
		for _, r := range records {
			if _, ok := r.ID(); !ok {
				t.Errorf("%s record without id: %v", name, r)
			}
			if _, ok := r.CreatedAt(); !ok {
				t.Errorf("%s record without createdAt: %v", name, r)
			}
		}
	}
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	s := store.NewLocal(store.NewMemoryKV(), store.DefaultPrefix)
	ctx := context.Background()

	res, err := Run(ctx, s, now, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("skipped = %v; want none", res.Skipped)
	}
	if !slices.Contains(res.Seeded, catalog.SettingsDocument) {
		t.Errorf("settings not seeded: %v", res.Seeded)
	}

	orders, _ := s.Load(ctx, catalog.Orders)
	if len(orders) != 4 {
		t.Errorf("len(orders) = %d; want 4", len(orders))
	}
	settings, _ := s.LoadDocument(ctx, catalog.SettingsDocument)
	if settings["storeName"] != "Tataibari Store" {
		t.Errorf("storeName = %v", settings["storeName"])
	}
}

func TestRun_LeavesPopulatedCollectionsAlone(t *testing.T) {
	s := store.NewLocal(store.NewMemoryKV(), store.DefaultPrefix)
	ctx := context.Background()

	if err := s.Save(ctx, catalog.Products, []domain.Record{{"id": 99, "name": "Mine"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.SaveDocument(ctx, catalog.SettingsDocument, domain.Record{"storeName": "Mine"}); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	res, err := Run(ctx, s, now, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Contains(res.Skipped, catalog.Products) || !slices.Contains(res.Skipped, catalog.SettingsDocument) {
		t.Errorf("skipped = %v", res.Skipped)
	}

	products, _ := s.Load(ctx, catalog.Products)
	if len(products) != 1 || products[0]["name"] != "Mine" {
		t.Errorf("products overwritten: %v", products)
	}

	// A second run changes nothing.
	res, err = Run(ctx, s, now, nil)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(res.Seeded) != 0 {
		t.Errorf("second run seeded %v", res.Seeded)
	}
}
