package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.Deal{},
		&models.Task{},
		&models.Interaction{},
		&models.Document{},
		&models.LeadSource{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestApp creates a Fiber app with the same error rendering as production
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			var custom *types.CustomError
			if e, ok := err.(*types.CustomError); ok {
				custom = e
			}
			if custom != nil {
				code = custom.Code
				message = custom.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})
}

// asUser mimics the auth middleware by storing a fixed user ID in context
func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		return c.Next()
	}
}

// createTestUser creates a user row directly via GORM
func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		FirstName:    "Test",
		LastName:     "Agent",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// createTestContact creates a contact row directly via GORM
func createTestContact(t *testing.T, db *gorm.DB, userID, firstName, lastName string) models.Contact {
	t.Helper()
	contact := models.Contact{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		State:     "FL",
		Type:      models.ContactTypeLead,
	}
	if err := db.Create(&contact).Error; err != nil {
		t.Fatalf("Failed to create test contact: %v", err)
	}
	return contact
}

// doJSON executes a request with an optional JSON body against the app
func doJSON(t *testing.T, app *fiber.App, method, url string, body interface{}) *http.Response {
	t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}
