package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sunstate-labs/agentcrm/internal/config"
	"github.com/sunstate-labs/agentcrm/internal/database"
	"github.com/sunstate-labs/agentcrm/internal/handlers"
	"github.com/sunstate-labs/agentcrm/internal/middleware"
	"github.com/sunstate-labs/agentcrm/internal/services"
	"github.com/sunstate-labs/agentcrm/internal/token"
	"github.com/sunstate-labs/agentcrm/internal/types"
	"github.com/sunstate-labs/agentcrm/tests/helpers"
	"gorm.io/gorm"
)

// TestWithMySQL runs the register/login/CRM flow against a real MySQL container
func TestWithMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	td := helpers.StartMySQLContainer(t)
	defer td.Terminate(t)

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            td.Host,
		DBPort:            td.Port.Port(),
		DBDatabase:        td.Database,
		DBUser:            td.User,
		DBPassword:        td.Password,
		DBConnectionLimit: 5,
		JWTSecret:         "integration-secret",
		JWTExpiresIn:      time.Hour,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := services.SeedLeadSources(db); err != nil {
		t.Fatalf("Failed to seed lead sources: %v", err)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	app := buildApp(db, tokens)

	t.Run("RegisterLoginFlow", func(t *testing.T) {
		testRegisterLoginFlow(t, app)
	})

	t.Run("ContactDealPipelineFlow", func(t *testing.T) {
		testContactDealPipelineFlow(t, app)
	})

	t.Run("LeadCatalog", func(t *testing.T) {
		testLeadCatalog(t, app)
	})
}

// buildApp wires the routes the way the server binary does
func buildApp(db *gorm.DB, tokens *token.Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if custom, ok := err.(*types.CustomError); ok {
				code = custom.Code
				message = custom.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens}
	contactHandler := &handlers.ContactHandler{DB: db}
	dealHandler := &handlers.DealHandler{DB: db}
	leadHandler := &handlers.LeadHandler{DB: db}

	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", middleware.Auth(tokens), authHandler.Me)

	requireAuth := middleware.Auth(tokens)
	contacts := api.Group("/contacts", requireAuth)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.Get)

	deals := api.Group("/deals", requireAuth)
	deals.Post("/", dealHandler.Create)
	deals.Get("/pipeline/summary", dealHandler.PipelineSummary)
	deals.Get("/:id", dealHandler.Get)

	leads := api.Group("/leads", requireAuth)
	leads.Get("/sources", leadHandler.Sources)
	leads.Get("/available", leadHandler.Available)

	return app
}

func request(t *testing.T, app *fiber.App, method, url, bearer string, body interface{}) *http.Response {
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
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func testRegisterLoginFlow(t *testing.T, app *fiber.App) {
	resp := request(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":     "flow@example.com",
		"password":  "integration-pass",
		"firstName": "Flow",
		"lastName":  "Tester",
	})
	helpers.AssertStatus(t, resp, 201)

	resp = request(t, app, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "flow@example.com",
		"password": "integration-pass",
	})
	helpers.AssertStatus(t, resp, 200)

	var login map[string]interface{}
	helpers.ParseJSON(t, resp, &login)
	bearer, _ := login["token"].(string)
	if bearer == "" {
		t.Fatal("Expected a bearer token from login")
	}

	resp = request(t, app, "GET", "/api/auth/me", bearer, nil)
	helpers.AssertStatus(t, resp, 200)

	// Without the token the same route refuses
	resp = request(t, app, "GET", "/api/auth/me", "", nil)
	helpers.AssertStatus(t, resp, 401)
}

func testContactDealPipelineFlow(t *testing.T, app *fiber.App) {
	resp := request(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":     "pipeline@example.com",
		"password":  "integration-pass",
		"firstName": "Pipe",
		"lastName":  "Line",
	})
	helpers.AssertStatus(t, resp, 201)
	var registered map[string]interface{}
	helpers.ParseJSON(t, resp, &registered)
	bearer := registered["token"].(string)

	// Create a tagged contact and read it back
	resp = request(t, app, "POST", "/api/contacts", bearer, map[string]interface{}{
		"firstName": "Carlos",
		"lastName":  "Rivera",
		"tags":      []string{"waterfront", "investor"},
	})
	helpers.AssertStatus(t, resp, 201)
	var created map[string]map[string]interface{}
	helpers.ParseJSON(t, resp, &created)
	contactID := created["contact"]["id"].(string)

	resp = request(t, app, "GET", "/api/contacts/"+contactID, bearer, nil)
	helpers.AssertStatus(t, resp, 200)
	var fetched map[string]map[string]interface{}
	helpers.ParseJSON(t, resp, &fetched)
	tags, _ := fetched["contact"]["tags"].([]interface{})
	if len(tags) != 2 || tags[0] != "waterfront" || tags[1] != "investor" {
		t.Errorf("Expected tags to round-trip in order, got %v", tags)
	}

	// Two deals feed the pipeline summary
	resp = request(t, app, "POST", "/api/deals", bearer, map[string]interface{}{
		"contactId":       contactID,
		"propertyAddress": "1 Palm Ave",
		"propertyCity":    "Tampa",
		"listingPrice":    100000,
		"commission":      3000,
	})
	helpers.AssertStatus(t, resp, 201)
	resp = request(t, app, "POST", "/api/deals", bearer, map[string]interface{}{
		"propertyAddress": "2 Palm Ave",
		"propertyCity":    "Tampa",
		"listingPrice":    120000,
		"offerPrice":      90000,
	})
	helpers.AssertStatus(t, resp, 201)

	resp = request(t, app, "GET", "/api/deals/pipeline/summary", bearer, nil)
	helpers.AssertStatus(t, resp, 200)
	var summary map[string]map[string]map[string]float64
	helpers.ParseJSON(t, resp, &summary)
	lead := summary["summary"]["LEAD"]
	if lead == nil || lead["count"] != 2 || lead["totalValue"] != 190000 || lead["totalCommission"] != 3000 {
		t.Errorf("Unexpected LEAD stage summary: %v", lead)
	}
}

func testLeadCatalog(t *testing.T, app *fiber.App) {
	resp := request(t, app, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":     "catalog@example.com",
		"password":  "integration-pass",
		"firstName": "Cata",
		"lastName":  "Log",
	})
	helpers.AssertStatus(t, resp, 201)
	var registered map[string]interface{}
	helpers.ParseJSON(t, resp, &registered)
	bearer := registered["token"].(string)

	resp = request(t, app, "GET", "/api/leads/available", bearer, nil)
	helpers.AssertStatus(t, resp, 200)
	var result map[string][]map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if len(result["availableLeads"]) != 4 {
		t.Errorf("Expected 4 seeded lead sources, got %d", len(result["availableLeads"]))
	}
}
