// cmd/adduser/main.go
// Creates or updates an operator account in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username padraic -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/racecal/config"
	bundb "github.com/padraicbc/racecal/db"
	"github.com/padraicbc/racecal/handlers"
	"github.com/padraicbc/racecal/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		log.Fatal("adduser: ", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables: ", err)
	}

	user := &models.User{
		Username: *username,
		Password: hash,
	}
	if err := bundb.NewStore(db).UpsertUser(ctx, user); err != nil {
		log.Fatal("insert user: ", err)
	}

	fmt.Printf("user %q saved\n", *username)
}
