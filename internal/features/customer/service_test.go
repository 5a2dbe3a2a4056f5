package customer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go-support/internal/common/apperr"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mockCustomerRepo records the arguments the service hands the store
// and answers List the way the store would: filter, then skip, then
// limit, in insertion order.
type mockCustomerRepo struct {
	customers map[primitive.ObjectID]*Customer
	order     []primitive.ObjectID

	lastFilter bson.M
	lastSkip   int64
	lastLimit  int64
	lastSet    bson.M
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[primitive.ObjectID]*Customer)}
}

func (m *mockCustomerRepo) Insert(ctx context.Context, customer *Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	stored := *customer
	m.customers[customer.ID] = &stored
	m.order = append(m.order, customer.ID)
	return nil
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *c
	return &copied, nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Customer, error) {
	m.lastSet = set
	c, ok := m.customers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if name, ok := set["name"].(string); ok {
		c.Name = name
	}
	if active, ok := set["is_active"].(bool); ok {
		c.IsActive = active
	}
	copied := *c
	return &copied, nil
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := m.customers[id]; !ok {
		return 0, nil
	}
	delete(m.customers, id)
	return 1, nil
}

func (m *mockCustomerRepo) List(ctx context.Context, filter bson.M, skip, limit int64) ([]Customer, error) {
	m.lastFilter = filter
	m.lastSkip = skip
	m.lastLimit = limit

	matched := []Customer{}
	for _, id := range m.order {
		c, ok := m.customers[id]
		if !ok {
			continue
		}
		if active, ok := filter["is_active"].(bool); ok && c.IsActive != active {
			continue
		}
		if nameFilter, ok := filter["name"].(bson.M); ok {
			regex := nameFilter["$regex"].(primitive.Regex)
			if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(regex.Pattern)) {
				continue
			}
		}
		matched = append(matched, *c)
	}

	if skip >= int64(len(matched)) {
		return []Customer{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *mockCustomerRepo) EnsureIndexes(ctx context.Context) error { return nil }

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newMockCustomerRepo()
	service := NewCustomerService(repo)

	created, err := service.Create(context.Background(), &Customer{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !created.IsActive {
		t.Error("expected new customer to be active")
	}
	if created.Preferences.PreferredLanguage != "en" {
		t.Errorf("PreferredLanguage = %q, want en", created.Preferences.PreferredLanguage)
	}
	if created.Preferences.TimeZone != "UTC" {
		t.Errorf("TimeZone = %q, want UTC", created.Preferences.TimeZone)
	}
	if created.Preferences.NotificationFrequency != FrequencyImmediate {
		t.Errorf("NotificationFrequency = %q, want immediate", created.Preferences.NotificationFrequency)
	}
}

func TestCreateRequiresName(t *testing.T) {
	service := NewCustomerService(newMockCustomerRepo())

	if _, err := service.Create(context.Background(), &Customer{}); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestListBuildsFilter(t *testing.T) {
	repo := newMockCustomerRepo()
	service := NewCustomerService(repo)

	active := true
	_, err := service.List(context.Background(), ListQuery{
		Skip:     20,
		Limit:    5,
		Search:   "doe",
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if got := repo.lastFilter["is_active"]; got != true {
		t.Errorf("filter[is_active] = %v, want true", got)
	}
	nameFilter, ok := repo.lastFilter["name"].(bson.M)
	if !ok {
		t.Fatalf("filter[name] = %v, want bson.M", repo.lastFilter["name"])
	}
	regex, ok := nameFilter["$regex"].(primitive.Regex)
	if !ok {
		t.Fatalf("filter[name][$regex] = %v, want primitive.Regex", nameFilter["$regex"])
	}
	if regex.Pattern != "doe" || regex.Options != "i" {
		t.Errorf("regex = %+v, want case-insensitive 'doe'", regex)
	}
	if repo.lastSkip != 20 || repo.lastLimit != 5 {
		t.Errorf("pagination = (%d, %d), want (20, 5)", repo.lastSkip, repo.lastLimit)
	}
}

func TestListDefaults(t *testing.T) {
	repo := newMockCustomerRepo()
	service := NewCustomerService(repo)

	if _, err := service.List(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(repo.lastFilter) != 0 {
		t.Errorf("filter = %v, want empty", repo.lastFilter)
	}
	if repo.lastLimit != 10 {
		t.Errorf("limit = %d, want default 10", repo.lastLimit)
	}
}

func TestListPaginationReturnsDistinctPages(t *testing.T) {
	repo := newMockCustomerRepo()
	service := NewCustomerService(repo)
	ctx := context.Background()

	for _, name := range []string{"Ann", "Bob"} {
		if _, err := service.Create(ctx, &Customer{Name: name}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	first, err := service.List(ctx, ListQuery{Skip: 0, Limit: 1})
	if err != nil {
		t.Fatalf("List() page one error = %v", err)
	}
	second, err := service.List(ctx, ListQuery{Skip: 1, Limit: 1})
	if err != nil {
		t.Fatalf("List() page two error = %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("page sizes = %d, %d; want 1, 1", len(first), len(second))
	}
	if first[0].ID == second[0].ID {
		t.Errorf("pages overlap: both returned %s", first[0].Name)
	}
	if first[0].Name != "Ann" || second[0].Name != "Bob" {
		t.Errorf("pages = %q, %q; want Ann then Bob", first[0].Name, second[0].Name)
	}
}

func TestExportIncludesAllMatchesWhenUnbounded(t *testing.T) {
	repo := newMockCustomerRepo()
	service := NewCustomerService(repo)
	ctx := context.Background()

	names := []string{"Ann", "Bob", "Cleo"}
	for _, name := range names {
		if _, err := service.Create(ctx, &Customer{Name: name}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	data, filename, err := service.ExportXLSX(ctx, ListQuery{Limit: -1})
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}
	if !strings.HasPrefix(filename, "customers_") {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Customers")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	// header plus one row per customer
	if len(rows) != len(names)+1 {
		t.Fatalf("rows = %d, want %d", len(rows), len(names)+1)
	}
	for i, name := range names {
		if rows[i+1][1] != name {
			t.Errorf("row %d name = %q, want %q", i+1, rows[i+1][1], name)
		}
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	repo := newMockCustomerRepo()
	service := NewCustomerService(repo)

	created, _ := service.Create(context.Background(), &Customer{Name: "Jane Doe"})

	name := "Jane Smith"
	updated, err := service.Update(context.Background(), created.ID.Hex(), &CustomerUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Jane Smith" {
		t.Errorf("Name = %q, want Jane Smith", updated.Name)
	}

	// only the provided field plus the timestamp may be written
	if len(repo.lastSet) != 2 {
		t.Fatalf("set = %v, want name and updated_at only", repo.lastSet)
	}
	if _, ok := repo.lastSet["updated_at"]; !ok {
		t.Error("expected updated_at in set")
	}
	if _, ok := repo.lastSet["is_active"]; ok {
		t.Error("is_active written without being provided")
	}
}

func TestUpdateMissingCustomer(t *testing.T) {
	service := NewCustomerService(newMockCustomerRepo())

	name := "Nobody"
	_, err := service.Update(context.Background(), primitive.NewObjectID().Hex(), &CustomerUpdate{Name: &name})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteIdempotentView(t *testing.T) {
	repo := newMockCustomerRepo()
	service := NewCustomerService(repo)

	created, _ := service.Create(context.Background(), &Customer{Name: "Jane Doe"})

	deleted, err := service.Delete(context.Background(), created.ID.Hex())
	if err != nil || !deleted {
		t.Fatalf("first Delete() = %v, %v; want true, nil", deleted, err)
	}
	deleted, err = service.Delete(context.Background(), created.ID.Hex())
	if err != nil || deleted {
		t.Fatalf("second Delete() = %v, %v; want false, nil", deleted, err)
	}
}

func TestPreferredContactValue(t *testing.T) {
	methods := []ContactMethod{
		{Type: ContactTypeEmail, Value: "a@example.com"},
		{Type: ContactTypePhone, Value: "+15550100", IsPreferred: true},
	}
	if got := preferredContactValue(methods); got != "+15550100" {
		t.Errorf("preferredContactValue = %q, want the preferred entry", got)
	}
	if got := preferredContactValue(methods[:1]); got != "a@example.com" {
		t.Errorf("preferredContactValue = %q, want first entry fallback", got)
	}
	if got := preferredContactValue(nil); got != "" {
		t.Errorf("preferredContactValue = %q, want empty", got)
	}
}
