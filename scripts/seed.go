// One-off: go run scripts/seed.go
// Provisions demo users and tasks. Wipes existing data first.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	name, email, password string
}

type seedTask struct {
	title, description, priority, status string
}

var seedUsers = []seedUser{
	{"Admin User", "admin@example.com", "admin123"},
	{"Regular User", "user@example.com", "user123"},
	{"Test User", "test@example.com", "test123"},
}

var seedTasks = []seedTask{
	{"Complete Project Documentation", "Write comprehensive documentation for the task management application", "high", "incomplete"},
	{"Implement Task Filtering", "Add functionality to filter tasks by status and priority", "medium", "complete"},
	{"Update UI Styling", "Improve the visual design of the application", "low", "incomplete"},
	{"Fix Authentication Bug", "Resolve the issue with JWT token expiration", "high", "incomplete"},
	{"Add Task Categories", "Implement the ability to categorize tasks", "medium", "incomplete"},
}

func main() {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "PG_DSN is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, `TRUNCATE tasks, users RESTART IDENTITY CASCADE`); err != nil {
		fmt.Fprintf(os.Stderr, "truncate: %v\n", err)
		os.Exit(1)
	}

	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 10)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash: %v\n", err)
			os.Exit(1)
		}
		var id int64
		err = pool.QueryRow(ctx,
			`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
			u.name, u.email, string(hash),
		).Scan(&id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert user %s: %v\n", u.email, err)
			os.Exit(1)
		}
		for _, t := range seedTasks {
			_, err := pool.Exec(ctx,
				`INSERT INTO tasks (owner_id, title, description, priority, status) VALUES ($1, $2, $3, $4, $5)`,
				id, t.title, t.description, t.priority, t.status,
			)
			if err != nil {
				fmt.Fprintf(os.Stderr, "insert task: %v\n", err)
				os.Exit(1)
			}
		}
	}

	fmt.Println("database seeded")
	fmt.Println("\ntest users:")
	for _, u := range seedUsers {
		fmt.Printf("  %s / %s\n", u.email, u.password)
	}
}
