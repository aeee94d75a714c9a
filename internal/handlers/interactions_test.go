package handlers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/handlers"
	"github.com/sunstate-labs/agentcrm/internal/models"
	"github.com/sunstate-labs/agentcrm/tests/helpers"
	"gorm.io/gorm"
)

func interactionApp(db *gorm.DB, userID string) *fiber.App {
	app := newTestApp()
	app.Use(asUser(userID))
	handler := &handlers.InteractionHandler{DB: db}
	app.Get("/api/interactions/contact/:contactId", handler.ListByContact)
	app.Post("/api/interactions", handler.Create)
	app.Delete("/api/interactions/:id", handler.Delete)
	return app
}

// TestCreateInteraction tests creation and the dateTime default
func TestCreateInteraction(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	contact := createTestContact(t, db, user.ID, "Carlos", "Rivera")
	app := interactionApp(db, user.ID)

	before := time.Now().UTC().Add(-time.Second)
	resp := doJSON(t, app, "POST", "/api/interactions", map[string]interface{}{
		"contactId": contact.ID,
		"type":      "CALL",
		"subject":   "Showing follow-up",
	})
	helpers.AssertStatus(t, resp, 201)

	var result map[string]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	interaction := result["interaction"]
	if interaction["type"] != "CALL" {
		t.Errorf("Expected type CALL, got %v", interaction["type"])
	}

	raw, _ := interaction["dateTime"].(string)
	stamp, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("Expected RFC3339 dateTime, got %v: %v", raw, err)
	}
	if stamp.Before(before) || stamp.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("Expected dateTime defaulted to now, got %v", stamp)
	}

	// Missing type
	resp = doJSON(t, app, "POST", "/api/interactions", map[string]interface{}{
		"contactId": contact.ID,
	})
	helpers.AssertStatus(t, resp, 400)
	helpers.AssertErrorBody(t, resp, "Contact ID and type required")
}

// TestCreateInteractionForeignContact verifies that logging against another
// user's contact reads as contact-not-found
func TestCreateInteractionForeignContact(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	contact := createTestContact(t, db, owner.ID, "Carlos", "Rivera")

	app := interactionApp(db, intruder.ID)
	resp := doJSON(t, app, "POST", "/api/interactions", map[string]interface{}{
		"contactId": contact.ID,
		"type":      "CALL",
	})
	helpers.AssertStatus(t, resp, 404)
	helpers.AssertErrorBody(t, resp, "Contact not found")

	resp = doJSON(t, app, "GET", "/api/interactions/contact/"+contact.ID, nil)
	helpers.AssertStatus(t, resp, 404)
}

// TestListInteractions verifies newest-first ordering and the 50-row cap
func TestListInteractions(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	contact := createTestContact(t, db, user.ID, "Carlos", "Rivera")

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		interaction := models.Interaction{
			UserID:    user.ID,
			ContactID: contact.ID,
			Type:      "EMAIL",
			Subject:   fmt.Sprintf("touch %d", i),
			DateTime:  base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.Create(&interaction).Error; err != nil {
			t.Fatalf("Failed to create test interaction: %v", err)
		}
	}

	app := interactionApp(db, user.ID)
	resp := doJSON(t, app, "GET", "/api/interactions/contact/"+contact.ID, nil)
	helpers.AssertStatus(t, resp, 200)

	var result map[string][]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	interactions := result["interactions"]
	if len(interactions) != 50 {
		t.Fatalf("Expected 50 interactions (default cap), got %d", len(interactions))
	}
	if interactions[0]["subject"] != "touch 54" {
		t.Errorf("Expected newest interaction first, got %v", interactions[0]["subject"])
	}

	// Explicit limit
	resp = doJSON(t, app, "GET", "/api/interactions/contact/"+contact.ID+"?limit=5", nil)
	helpers.AssertStatus(t, resp, 200)
	helpers.ParseJSON(t, resp, &result)
	if len(result["interactions"]) != 5 {
		t.Errorf("Expected 5 interactions, got %d", len(result["interactions"]))
	}
}

// TestDeleteInteraction tests deletion and cross-tenant invisibility
func TestDeleteInteraction(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "agent@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	contact := createTestContact(t, db, user.ID, "Carlos", "Rivera")

	interaction := models.Interaction{
		UserID:    user.ID,
		ContactID: contact.ID,
		Type:      "MEETING",
		DateTime:  time.Now().UTC(),
	}
	if err := db.Create(&interaction).Error; err != nil {
		t.Fatalf("Failed to create test interaction: %v", err)
	}

	// Intruder cannot see it
	resp := doJSON(t, interactionApp(db, intruder.ID), "DELETE", "/api/interactions/"+interaction.ID, nil)
	helpers.AssertStatus(t, resp, 404)

	// Owner can
	resp = doJSON(t, interactionApp(db, user.ID), "DELETE", "/api/interactions/"+interaction.ID, nil)
	helpers.AssertStatus(t, resp, 200)
	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["message"] != "Interaction deleted" {
		t.Errorf("Expected confirmation message, got %v", result["message"])
	}
}
