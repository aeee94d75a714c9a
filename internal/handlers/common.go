package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// getUserID extracts the caller's user ID from context (set by auth middleware)
func getUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user not found in context")
	}
	return userID, nil
}

// queryBool parses an optional boolean query parameter; nil means absent
func queryBool(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key, "")
	if raw == "" {
		return nil
	}
	v := raw == "true"
	return &v
}

// queryInt parses an optional integer query parameter, falling back to the
// default when missing or malformed
func queryInt(c *fiber.Ctx, key string, defaultValue int) int {
	raw := c.Query(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
