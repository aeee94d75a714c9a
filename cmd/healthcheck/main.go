// Container healthcheck probe. Exits 0 when the server reports ok, 1 otherwise.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%s/health", port))
	if err != nil {
		log.Printf("Health check request failed: %v", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var result struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Failed to decode health check response: %v", err)
		os.Exit(1)
	}

	output, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(output))

	if resp.StatusCode != http.StatusOK || result.Status != "ok" {
		os.Exit(1)
	}
	os.Exit(0)
}
