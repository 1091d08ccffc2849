package catalog

import (
	"testing"

	"github.com/simp-lee/storeadmin/internal/domain"
)

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	if len(defs) != 8 {
		t.Fatalf("len(defs) = %d; want 8", len(defs))
	}

	seen := make(map[string]bool)
	for _, d := range defs {
		if seen[d.Name] {
			t.Errorf("duplicate definition %q", d.Name)
		}
		seen[d.Name] = true
		if d.DefaultLimit < 1 {
			t.Errorf("%s: default limit %d", d.Name, d.DefaultLimit)
		}
	}

	cats, ok := Lookup(Categories)
	if !ok || cats.DefaultLimit != 50 {
		t.Errorf("categories default limit = %d; want 50", cats.DefaultLimit)
	}
	logs, _ := Lookup(Logs)
	if logs.Spec.SortField != LogTimestampField {
		t.Errorf("logs sort field = %q", logs.Spec.SortField)
	}
	if _, ok := Lookup("coupons"); ok {
		t.Error("Lookup of unknown resource succeeded")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"About Us", "about-us"},
		{"  Privacy   Policy ", "privacy-policy"},
		{"FAQ", "faq"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestPreparePage(t *testing.T) {
	def, _ := Lookup(Pages)

	fields := domain.Record{"title": "Shipping Info"}
	if err := def.Prepare(fields, true); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if fields["slug"] != "shipping-info" {
		t.Errorf("slug = %v", fields["slug"])
	}
	if fields["published"] != false {
		t.Errorf("published = %v; want false", fields["published"])
	}

	fields = domain.Record{"title": "Shipping Info", "slug": "custom"}
	if err := def.Prepare(fields, true); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if fields["slug"] != "custom" {
		t.Errorf("explicit slug overwritten: %v", fields["slug"])
	}

	if err := def.Prepare(domain.Record{"content": "x"}, true); !domain.IsValidation(err) {
		t.Errorf("missing title: expected validation error, got %v", err)
	}
	if err := def.Prepare(domain.Record{"content": "x"}, false); err != nil {
		t.Errorf("partial update without title: %v", err)
	}

	fields = domain.Record{"title": "Renamed Page"}
	if err := def.Prepare(fields, false); err != nil {
		t.Fatalf("Prepare update: %v", err)
	}
	if _, ok := fields["slug"]; ok {
		t.Errorf("update with a new title must keep the stored slug, got %v", fields["slug"])
	}
}

func TestPrepareMedia(t *testing.T) {
	def, _ := Lookup(Media)

	tests := []struct {
		name    string
		fields  domain.Record
		wantErr bool
	}{
		{"valid image", domain.Record{"name": "a.jpg", "type": "image/jpeg", "size": 1024.0}, false},
		{"exactly max", domain.Record{"name": "a.png", "type": "image/png", "size": float64(MaxMediaSize)}, false},
		{"too large", domain.Record{"name": "a.png", "type": "image/png", "size": float64(MaxMediaSize + 1)}, true},
		{"not image", domain.Record{"name": "a.pdf", "type": "application/pdf", "size": 10.0}, true},
		{"missing type", domain.Record{"name": "a.jpg", "size": 10.0}, true},
		{"missing name", domain.Record{"type": "image/jpeg", "size": 10.0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := def.Prepare(tt.fields, true)
			if tt.wantErr && !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	fields := domain.Record{"name": "b.jpg", "type": "image/jpeg", "size": 1.0}
	_ = def.Prepare(fields, true)
	if fields["originalName"] != "b.jpg" || fields["folder"] != "" {
		t.Errorf("defaults not applied: %v", fields)
	}
}

func TestPrepareOrder(t *testing.T) {
	def, _ := Lookup(Orders)

	fields := domain.Record{"customerName": "Ann"}
	if err := def.Prepare(fields, true); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if fields["status"] != StatusReceived {
		t.Errorf("status = %v; want %s", fields["status"], StatusReceived)
	}

	if err := def.Prepare(domain.Record{"status": "lost"}, false); !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if err := def.Prepare(domain.Record{"status": StatusShipped}, false); err != nil {
		t.Errorf("valid status rejected: %v", err)
	}
}

func TestPrepareUserAndNotification(t *testing.T) {
	users, _ := Lookup(Users)
	u := domain.Record{"name": "Ann", "email": "ann@example.com"}
	if err := users.Prepare(u, true); err != nil {
		t.Fatalf("Prepare user: %v", err)
	}
	if u["orderCount"] != 0 || u["totalSpent"] != 0 {
		t.Errorf("aggregates not defaulted: %v", u)
	}
	if err := users.Prepare(domain.Record{"email": "nope"}, false); !domain.IsValidation(err) {
		t.Errorf("bad email: expected validation error, got %v", err)
	}

	notes, _ := Lookup(Notifications)
	n := domain.Record{"title": "Hi"}
	if err := notes.Prepare(n, true); err != nil {
		t.Fatalf("Prepare notification: %v", err)
	}
	if n["read"] != false {
		t.Errorf("read = %v; want false", n["read"])
	}
	if err := notes.Prepare(domain.Record{"read": "yes"}, false); !domain.IsValidation(err) {
		t.Errorf("non-bool read: expected validation error, got %v", err)
	}
}

func TestIsPending(t *testing.T) {
	for _, s := range []string{StatusReceived, StatusViewed, StatusProcessing} {
		if !IsPending(s) {
			t.Errorf("%s should be pending", s)
		}
	}
	for _, s := range []string{StatusShipped, StatusDelivered, StatusCancelled} {
		if IsPending(s) {
			t.Errorf("%s should not be pending", s)
		}
	}
}
