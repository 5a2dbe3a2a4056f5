package customer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go-support/internal/common/apperr"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListQuery carries the list/search parameters. Search matches the name
// field case-insensitively; IsActive is an equality filter.
type ListQuery struct {
	Skip     int64
	Limit    int64
	Search   string
	IsActive *bool
}

type CustomerService interface {
	Create(ctx context.Context, customer *Customer) (*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, id string, update *CustomerUpdate) (*Customer, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, q ListQuery) ([]Customer, error)
	ExportXLSX(ctx context.Context, q ListQuery) ([]byte, string, error)
}

type CustomerServiceImpl struct {
	Repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) CustomerService {
	return &CustomerServiceImpl{Repo: repo}
}

func (s *CustomerServiceImpl) Create(ctx context.Context, customer *Customer) (*Customer, error) {
	if customer.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	customer.IsActive = true
	if customer.Preferences.PreferredLanguage == "" {
		customer.Preferences.PreferredLanguage = "en"
	}
	if customer.Preferences.TimeZone == "" {
		customer.Preferences.TimeZone = "UTC"
	}
	if customer.Preferences.NotificationFrequency == "" {
		customer.Preferences.NotificationFrequency = FrequencyImmediate
	}

	if err := s.Repo.Insert(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerServiceImpl) Get(ctx context.Context, id string) (*Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("id", id)
	}

	customer, err := s.Repo.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Update applies a partial merge: only fields present in the payload are
// written, everything else is left untouched.
func (s *CustomerServiceImpl) Update(ctx context.Context, id string, update *CustomerUpdate) (*Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("id", id)
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.ContactMethods != nil {
		set["contact_methods"] = update.ContactMethods
	}
	if update.Preferences != nil {
		set["preferences"] = *update.Preferences
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}

	customer, err := s.Repo.Update(ctx, oid, set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete reports true only when exactly one document was removed, so a
// repeated call on the same id returns false.
func (s *CustomerServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperr.InvalidID("id", id)
	}

	deleted, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}

func (s *CustomerServiceImpl) List(ctx context.Context, q ListQuery) ([]Customer, error) {
	filter := bson.M{}
	if q.IsActive != nil {
		filter["is_active"] = *q.IsActive
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: q.Search, Options: "i"}}
	}

	// limit 0 falls back to the page default; a negative limit means
	// unbounded and is used by the export path.
	if q.Limit == 0 {
		q.Limit = 10
	}

	return s.Repo.List(ctx, filter, q.Skip, q.Limit)
}

// ExportXLSX renders the matching customers into a spreadsheet.
func (s *CustomerServiceImpl) ExportXLSX(ctx context.Context, q ListQuery) ([]byte, string, error) {
	customers, err := s.List(ctx, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Customers"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	columns := []string{"ID", "Name", "Preferred Contact", "Language", "Frequency", "Active", "Created At"}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, customer := range customers {
		row := []any{
			customer.ID.Hex(),
			customer.Name,
			preferredContactValue(customer.ContactMethods),
			customer.Preferences.PreferredLanguage,
			string(customer.Preferences.NotificationFrequency),
			customer.IsActive,
			customer.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("customers_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func preferredContactValue(methods []ContactMethod) string {
	for _, m := range methods {
		if m.IsPreferred {
			return m.Value
		}
	}
	if len(methods) > 0 {
		return methods[0].Value
	}
	return ""
}
