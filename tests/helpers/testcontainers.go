// This file is a helper for running tests against real database containers.
// It is used by the integration tests in tests/integration.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDatabase describes a started database container and its reachable endpoint
type TestDatabase struct {
	Container testcontainers.Container
	Host      string
	Port      nat.Port
	Database  string
	User      string
	Password  string
}

// Terminate stops and removes the container
func (td *TestDatabase) Terminate(t *testing.T) {
	t.Helper()
	if td.Container == nil {
		return
	}
	if err := td.Container.Terminate(context.Background()); err != nil {
		t.Logf("Failed to terminate database container: %v", err)
	}
}

// StartMySQLContainer starts a MySQL container for integration tests and
// blocks until the server accepts connections. The image defaults to
// mysql:8.4 and can be overridden with DB_IMAGE.
func StartMySQLContainer(t *testing.T) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mysql:8.4"
	}

	td := &TestDatabase{
		Database: "agentcrm_test",
		User:     "testuser",
		Password: "testpass",
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      td.Database,
				"MYSQL_USER":          td.User,
				"MYSQL_PASSWORD":      td.Password,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start database container: %v", err)
	}
	td.Container = container

	host, err := container.Host(ctx)
	if err != nil {
		td.Terminate(t)
		t.Fatalf("Failed to get container host: %v", err)
	}
	td.Host = host

	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		td.Terminate(t)
		t.Fatalf("Failed to get container port: %v", err)
	}
	td.Port = port

	// The listening port opens before the server finishes initializing, so
	// keep pinging until a real connection succeeds.
	if err := waitForMySQL(td); err != nil {
		td.Terminate(t)
		t.Fatalf("Database not ready: %v", err)
	}

	return td
}

func waitForMySQL(td *TestDatabase) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", td.User, td.Password, td.Host, td.Port.Port(), td.Database)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return err
}
