package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-contacts-backend/internal/domain"
)

func strp(s string) *string { return &s }

// seedContacts inserts rows in order. Rows without a CreatedAt get base plus
// one minute per position.
func seedContacts(t *testing.T, db *gorm.DB, base time.Time, rows ...domain.Contact) {
	t.Helper()
	for i := range rows {
		if rows[i].CreatedAt.IsZero() {
			rows[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		}
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed %s: %v", rows[i].ID, err)
		}
	}
}

func ids(cs []domain.Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateContact_GeneratesIDAndCreatedAt(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	c, err := CreateContact(ctx, db, domain.CreateContactInput{Name: "Ada", Phone: "555", Email: strp("ada@example.org")})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if len(c.ID) != 36 {
		t.Fatalf("expected UUID id, got %q", c.ID)
	}
	if c.CreatedAt.Before(before) || c.UpdatedAt != nil {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", c.CreatedAt, c.UpdatedAt)
	}

	got, err := GetContact(ctx, db, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if got.Name != "Ada" || got.Phone != "555" || got.Email == nil || *got.Email != "ada@example.org" || got.Gender != nil {
		t.Fatalf("readback mismatch: %+v", got)
	}
}

func TestCreateContact_HonorsClientIDAndCreatedAt(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ts := domain.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	c, err := CreateContact(context.Background(), db, domain.CreateContactInput{ID: strp("own-id"), Name: "A", Phone: "1", CreatedAt: &ts})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if c.ID != "own-id" || !c.CreatedAt.Equal(ts.Time()) {
		t.Fatalf("client values not honored: %+v", c)
	}

	// Same id again violates the primary key.
	if _, err := CreateContact(context.Background(), db, domain.CreateContactInput{ID: strp("own-id"), Name: "B", Phone: "2"}); err == nil {
		t.Fatalf("expected primary key violation")
	}
}

func TestListContacts_OrderSkipLimit(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// c3 shares c4's created_at; id breaks the tie.
	seedContacts(t, db, base,
		domain.Contact{ID: "c1", Name: "A", Phone: "1"},
		domain.Contact{ID: "c4", Name: "B", Phone: "2"},
		domain.Contact{ID: "c3", Name: "C", Phone: "3", CreatedAt: base.Add(time.Minute)},
		domain.Contact{ID: "c5", Name: "D", Phone: "4"},
	)

	all, err := ListContacts(ctx, db, domain.ListOptions{})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if want := []string{"c1", "c3", "c4", "c5"}; !equalIDs(ids(all), want) {
		t.Fatalf("order: got %v want %v", ids(all), want)
	}

	page, err := ListContacts(ctx, db, domain.ListOptions{Skip: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListContacts page: %v", err)
	}
	if want := []string{"c3", "c4"}; !equalIDs(ids(page), want) {
		t.Fatalf("page: got %v want %v", ids(page), want)
	}

	neg, err := ListContacts(ctx, db, domain.ListOptions{Skip: -5, Limit: 1})
	if err != nil || !equalIDs(ids(neg), []string{"c1"}) {
		t.Fatalf("negative skip: got %v err=%v", ids(neg), err)
	}

	past, err := ListContacts(ctx, db, domain.ListOptions{Skip: 10})
	if err != nil {
		t.Fatalf("ListContacts past end: %v", err)
	}
	if past == nil || len(past) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", past)
	}
}

func TestListContacts_DefaultLimit(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]domain.Contact, 0, DefaultListLimit+5)
	for i := 0; i < DefaultListLimit+5; i++ {
		rows = append(rows, domain.Contact{ID: newID(), Name: "n", Phone: "p", CreatedAt: base.Add(time.Duration(i) * time.Second)})
	}
	if err := db.CreateInBatches(&rows, 50).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := ListContacts(context.Background(), db, domain.ListOptions{Limit: 0})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(got) != DefaultListLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultListLimit, len(got))
	}
}

func TestListContacts_SearchAcrossFields(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ctx := context.Background()
	seedContacts(t, db, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		domain.Contact{ID: "c1", Name: "Alice Smith", Phone: "111"},
		domain.Contact{ID: "c2", Name: "Bob", Phone: "222-smith"},
		domain.Contact{ID: "c3", Name: "Carol", Phone: "333", Email: strp("carol@smith.io")},
		domain.Contact{ID: "c4", Name: "Dave", Phone: "444"},
	)

	got, err := ListContacts(ctx, db, domain.ListOptions{Search: "mith"})
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if want := []string{"c1", "c2", "c3"}; !equalIDs(ids(got), want) {
		t.Fatalf("search: got %v want %v", ids(got), want)
	}

	n, err := CountContacts(ctx, db, "mith", domain.ContactFilters{})
	if err != nil || n != 3 {
		t.Fatalf("CountContacts: n=%d err=%v", n, err)
	}

	none, err := ListContacts(ctx, db, domain.ListOptions{Search: "zzz"})
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no matches, got %v err=%v", ids(none), err)
	}
	if n, _ := CountContacts(ctx, db, "", domain.ContactFilters{}); n != 4 {
		t.Fatalf("empty search should count all, got %d", n)
	}
}

func TestListContacts_SearchWildcardsAreLiteral(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ctx := context.Background()
	seedContacts(t, db, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		domain.Contact{ID: "c1", Name: "100% real", Phone: "1"},
		domain.Contact{ID: "c2", Name: "1000 real", Phone: "2"},
		domain.Contact{ID: "c3", Name: "snake_case", Phone: "3"},
		domain.Contact{ID: "c4", Name: "snakeXcase", Phone: "4"},
		domain.Contact{ID: "c5", Name: "wow!", Phone: "5"},
	)

	for search, want := range map[string][]string{
		"0%":  {"c1"},
		"e_c": {"c3"},
		"w!":  {"c5"},
		"%":   {"c1"},
	} {
		got, err := ListContacts(ctx, db, domain.ListOptions{Search: search})
		if err != nil {
			t.Fatalf("search %q: %v", search, err)
		}
		if !equalIDs(ids(got), want) {
			t.Fatalf("search %q: got %v want %v", search, ids(got), want)
		}
	}
}

func TestListContacts_FiltersCombineWithSearch(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ctx := context.Background()
	seedContacts(t, db, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		domain.Contact{ID: "c1", Name: "Ann", Phone: "100", Email: strp("ann@a.io")},
		domain.Contact{ID: "c2", Name: "Ann", Phone: "200"},
		domain.Contact{ID: "c3", Name: "Ben", Phone: "100"},
	)

	got, err := ListContacts(ctx, db, domain.ListOptions{Filters: domain.ContactFilters{Name: strp("Ann")}})
	if err != nil || !equalIDs(ids(got), []string{"c1", "c2"}) {
		t.Fatalf("name filter: got %v err=%v", ids(got), err)
	}

	got, err = ListContacts(ctx, db, domain.ListOptions{Search: "10", Filters: domain.ContactFilters{Name: strp("Ann")}})
	if err != nil || !equalIDs(ids(got), []string{"c1"}) {
		t.Fatalf("search AND filter: got %v err=%v", ids(got), err)
	}

	got, err = ListContacts(ctx, db, domain.ListOptions{Filters: domain.ContactFilters{ID: strp("c3"), Phone: strp("100")}})
	if err != nil || !equalIDs(ids(got), []string{"c3"}) {
		t.Fatalf("id+phone filter: got %v err=%v", ids(got), err)
	}

	got, err = ListContacts(ctx, db, domain.ListOptions{Filters: domain.ContactFilters{Email: strp("ann@a.io")}})
	if err != nil || !equalIDs(ids(got), []string{"c1"}) {
		t.Fatalf("email filter: got %v err=%v", ids(got), err)
	}

	n, err := CountContacts(ctx, db, "", domain.ContactFilters{Phone: strp("100")})
	if err != nil || n != 2 {
		t.Fatalf("CountContacts with filter: n=%d err=%v", n, err)
	}
}

func TestGetContact_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	c, err := GetContact(context.Background(), db, "missing")
	if c != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound), got (%v, %v)", c, err)
	}
}

func TestUpdateContact_PartialAndStampsUpdatedAt(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedContacts(t, db, created,
		domain.Contact{ID: "c1", Name: "Ann", Phone: "100", Company: strp("Acme")},
	)

	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	got, err := UpdateContact(ctx, db, "c1", map[string]any{"phone": "999", "id_card": "X1"}, now)
	if err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}
	if got.Phone != "999" || got.IDCard == nil || *got.IDCard != "X1" {
		t.Fatalf("changes not applied: %+v", got)
	}
	if got.Name != "Ann" || got.Company == nil || *got.Company != "Acme" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed: %v", got.CreatedAt)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at not stamped: %v", got.UpdatedAt)
	}
}

func TestUpdateContact_EmptyPatchStillStamps(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	seedContacts(t, db, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		domain.Contact{ID: "c1", Name: "Ann", Phone: "100"},
	)
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := UpdateContact(context.Background(), db, "c1", nil, now)
	if err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at %v, got %v", now, got.UpdatedAt)
	}
}

func TestUpdateContact_IgnoresImmutableColumns(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seedContacts(t, db, created, domain.Contact{ID: "c1", Name: "Ann", Phone: "100"})

	got, err := UpdateContact(context.Background(), db, "c1",
		map[string]any{"id": "hijack", "created_at": time.Now(), "name": "Anna"}, time.Now())
	if err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}
	if got.ID != "c1" || !got.CreatedAt.Equal(created) || got.Name != "Anna" {
		t.Fatalf("immutable columns touched: %+v", got)
	}
}

func TestUpdateContact_UpdatedAtNotBeforeCreatedAt(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	future := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	seedContacts(t, db, future, domain.Contact{ID: "c1", Name: "Ann", Phone: "100"})

	got, err := UpdateContact(context.Background(), db, "c1", map[string]any{"name": "Anna"}, time.Now())
	if err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}
	if got.UpdatedAt == nil || got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("updated_at %v before created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateContact_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	got, err := UpdateContact(context.Background(), db, "missing", map[string]any{"name": "x"}, time.Now())
	if got != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound), got (%v, %v)", got, err)
	}
	var n int64
	db.Model(&domain.Contact{}).Count(&n)
	if n != 0 {
		t.Fatalf("update must not create rows, found %d", n)
	}
}

func TestDeleteContact_ReportsRemoval(t *testing.T) {
	db := newTestDB(t, &domain.Contact{})
	ctx := context.Background()
	seedContacts(t, db, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		domain.Contact{ID: "c1", Name: "Ann", Phone: "100"},
		domain.Contact{ID: "c2", Name: "Ben", Phone: "200"},
	)

	ok, err := DeleteContact(ctx, db, "c1")
	if err != nil || !ok {
		t.Fatalf("first delete: ok=%v err=%v", ok, err)
	}
	ok, err = DeleteContact(ctx, db, "c1")
	if err != nil || ok {
		t.Fatalf("second delete should report false: ok=%v err=%v", ok, err)
	}
	if _, err := GetContact(ctx, db, "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted contact still readable: %v", err)
	}
	if _, err := GetContact(ctx, db, "c2"); err != nil {
		t.Fatalf("other contact affected: %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain": "plain",
		"50%":   "50!%",
		"a_b":   "a!_b",
		"hi!":   "hi!!",
		"!%_":   "!!!%!_",
		"张三":    "张三",
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q) = %q; want %q", in, got, want)
		}
	}
}
