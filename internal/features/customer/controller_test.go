package customer

import (
	"net/http/httptest"
	"testing"

	"go-support/internal/common/response"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(repo *mockCustomerRepo) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler})
	api := NewCustomerApi(NewCustomerController(NewCustomerService(repo)))
	api.Setup(app)
	return app
}

func TestListRejectsMalformedIsActive(t *testing.T) {
	app := newTestApp(newMockCustomerRepo())

	resp, err := app.Test(httptest.NewRequest("GET", "/customers?is_active=yes", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusUnprocessableEntity)
	}
}

func TestListPassesIsActiveFilter(t *testing.T) {
	repo := newMockCustomerRepo()
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/customers?is_active=false", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if got := repo.lastFilter["is_active"]; got != false {
		t.Errorf("filter[is_active] = %v, want false", got)
	}
}

func TestExportDefaultsToUnboundedLimit(t *testing.T) {
	repo := newMockCustomerRepo()
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/customers/export", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if repo.lastLimit != -1 {
		t.Errorf("limit = %d, want -1 (unbounded)", repo.lastLimit)
	}
}

func TestExportHonorsExplicitLimit(t *testing.T) {
	repo := newMockCustomerRepo()
	app := newTestApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/customers/export?limit=5", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if repo.lastLimit != 5 {
		t.Errorf("limit = %d, want 5", repo.lastLimit)
	}
}
