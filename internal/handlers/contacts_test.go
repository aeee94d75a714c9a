package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/handlers"
	"github.com/sunstate-labs/agentcrm/tests/helpers"
	"gorm.io/gorm"
)

func contactApp(db *gorm.DB, userID string) *fiber.App {
	app := newTestApp()
	app.Use(asUser(userID))
	handler := &handlers.ContactHandler{DB: db}
	app.Get("/api/contacts", handler.List)
	app.Post("/api/contacts", handler.Create)
	app.Get("/api/contacts/:id", handler.Get)
	app.Put("/api/contacts/:id", handler.Update)
	app.Delete("/api/contacts/:id", handler.Delete)
	return app
}

// TestCreateContact tests creation defaults and the tag round-trip
func TestCreateContact(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	app := contactApp(db, user.ID)

	resp := doJSON(t, app, "POST", "/api/contacts", map[string]interface{}{
		"firstName": "Carlos",
		"lastName":  "Rivera",
		"email":     "carlos@example.com",
		"tags":      []string{"waterfront", "investor", "waterfront"},
	})
	helpers.AssertStatus(t, resp, 201)

	var result map[string]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	contact := result["contact"]

	if contact["state"] != "FL" {
		t.Errorf("Expected default state FL, got %v", contact["state"])
	}
	if contact["type"] != "LEAD" {
		t.Errorf("Expected default type LEAD, got %v", contact["type"])
	}

	// Order and duplicates survive the round trip
	tags, _ := contact["tags"].([]interface{})
	want := []string{"waterfront", "investor", "waterfront"}
	if len(tags) != len(want) {
		t.Fatalf("Expected %d tags, got %d: %v", len(want), len(tags), tags)
	}
	for i, w := range want {
		if tags[i] != w {
			t.Errorf("Expected tag[%d]=%q, got %v", i, w, tags[i])
		}
	}
}

// TestCreateContactValidation tests required name fields
func TestCreateContactValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	app := contactApp(db, user.ID)

	resp := doJSON(t, app, "POST", "/api/contacts", map[string]interface{}{
		"firstName": "Carlos",
	})
	helpers.AssertStatus(t, resp, 400)
	helpers.AssertErrorBody(t, resp, "First name and last name required")
}

// TestCreateContactSingleTag tests that a bare string tag is accepted
func TestCreateContactSingleTag(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	app := contactApp(db, user.ID)

	resp := doJSON(t, app, "POST", "/api/contacts", map[string]interface{}{
		"firstName": "Carlos",
		"lastName":  "Rivera",
		"tags":      "investor",
	})
	helpers.AssertStatus(t, resp, 201)

	var result map[string]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	tags, _ := result["contact"]["tags"].([]interface{})
	if len(tags) != 1 || tags[0] != "investor" {
		t.Errorf("Expected [investor], got %v", tags)
	}
}

// TestListContacts tests the search and tag filters and the related counts
func TestListContacts(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	app := contactApp(db, user.ID)

	create := doJSON(t, app, "POST", "/api/contacts", map[string]interface{}{
		"firstName": "Carlos",
		"lastName":  "Rivera",
		"email":     "carlos@example.com",
		"tags":      []string{"investor"},
	})
	helpers.AssertStatus(t, create, 201)
	create = doJSON(t, app, "POST", "/api/contacts", map[string]interface{}{
		"firstName": "Dana",
		"lastName":  "Whitfield",
		"tags":      []string{"waterfront"},
	})
	helpers.AssertStatus(t, create, 201)

	// Case-insensitive search on name
	resp := doJSON(t, app, "GET", "/api/contacts?search=CARLOS", nil)
	helpers.AssertStatus(t, resp, 200)
	var result map[string][]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if len(result["contacts"]) != 1 {
		t.Fatalf("Expected 1 search result, got %d", len(result["contacts"]))
	}
	if result["contacts"][0]["firstName"] != "Carlos" {
		t.Errorf("Expected Carlos, got %v", result["contacts"][0]["firstName"])
	}

	// Tag membership filter
	resp = doJSON(t, app, "GET", "/api/contacts?tag=waterfront", nil)
	helpers.AssertStatus(t, resp, 200)
	helpers.ParseJSON(t, resp, &result)
	if len(result["contacts"]) != 1 {
		t.Fatalf("Expected 1 tag result, got %d", len(result["contacts"]))
	}
	if result["contacts"][0]["firstName"] != "Dana" {
		t.Errorf("Expected Dana, got %v", result["contacts"][0]["firstName"])
	}

	// Every list item carries the related-record counts
	counts, ok := result["contacts"][0]["_count"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected _count in list item, got %v", result["contacts"][0]["_count"])
	}
	if counts["interactions"] != float64(0) || counts["tasks"] != float64(0) {
		t.Errorf("Expected zero counts, got %v", counts)
	}
}

// TestContactOwnership verifies that another user's contact reads as absent
func TestContactOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	contact := createTestContact(t, db, owner.ID, "Carlos", "Rivera")

	app := contactApp(db, intruder.ID)

	resp := doJSON(t, app, "GET", "/api/contacts/"+contact.ID, nil)
	helpers.AssertStatus(t, resp, 404)
	helpers.AssertErrorBody(t, resp, "Contact not found")

	resp = doJSON(t, app, "PUT", "/api/contacts/"+contact.ID, map[string]interface{}{
		"notes": "hijacked",
	})
	helpers.AssertStatus(t, resp, 404)

	resp = doJSON(t, app, "DELETE", "/api/contacts/"+contact.ID, nil)
	helpers.AssertStatus(t, resp, 404)

	// The list never exposes the row either
	resp = doJSON(t, app, "GET", "/api/contacts", nil)
	helpers.AssertStatus(t, resp, 200)
	var result map[string][]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if len(result["contacts"]) != 0 {
		t.Errorf("Expected empty list for intruder, got %d rows", len(result["contacts"]))
	}
}

// TestUpdateContact tests that absent fields are left untouched
func TestUpdateContact(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	app := contactApp(db, user.ID)

	create := doJSON(t, app, "POST", "/api/contacts", map[string]interface{}{
		"firstName": "Carlos",
		"lastName":  "Rivera",
		"phone":     "305-555-0100",
		"tags":      []string{"investor"},
	})
	helpers.AssertStatus(t, create, 201)
	var created map[string]map[string]interface{}
	helpers.ParseJSON(t, create, &created)
	id := created["contact"]["id"].(string)

	resp := doJSON(t, app, "PUT", "/api/contacts/"+id, map[string]interface{}{
		"phone": "305-555-0199",
	})
	helpers.AssertStatus(t, resp, 200)

	var result map[string]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	contact := result["contact"]
	if contact["phone"] != "305-555-0199" {
		t.Errorf("Expected updated phone, got %v", contact["phone"])
	}
	if contact["firstName"] != "Carlos" {
		t.Errorf("Expected first name untouched, got %v", contact["firstName"])
	}
	tags, _ := contact["tags"].([]interface{})
	if len(tags) != 1 || tags[0] != "investor" {
		t.Errorf("Expected tags untouched, got %v", tags)
	}

	// An explicit tags list replaces the stored one
	resp = doJSON(t, app, "PUT", "/api/contacts/"+id, map[string]interface{}{
		"tags": []string{"cash-buyer"},
	})
	helpers.AssertStatus(t, resp, 200)
	helpers.ParseJSON(t, resp, &result)
	tags, _ = result["contact"]["tags"].([]interface{})
	if len(tags) != 1 || tags[0] != "cash-buyer" {
		t.Errorf("Expected replaced tags, got %v", tags)
	}
}

// TestDeleteContact tests deletion and the confirmation body
func TestDeleteContact(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	contact := createTestContact(t, db, user.ID, "Carlos", "Rivera")
	app := contactApp(db, user.ID)

	resp := doJSON(t, app, "DELETE", "/api/contacts/"+contact.ID, nil)
	helpers.AssertStatus(t, resp, 200)
	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["message"] != "Contact deleted" {
		t.Errorf("Expected confirmation message, got %v", result["message"])
	}

	resp = doJSON(t, app, "GET", "/api/contacts/"+contact.ID, nil)
	helpers.AssertStatus(t, resp, 404)
}
