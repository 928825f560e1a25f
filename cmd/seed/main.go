package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hagwonlab/homework-board/database"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Homework Board - Database Seeding")
	fmt.Println(separator)

	seeder := database.NewSeeder(store)
	result, err := seeder.SeedAll()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println(separator)
	fmt.Printf("Seeding completed: %d users, %d todos created\n",
		result.CreatedUsers, result.CreatedTodos)
	fmt.Println(separator)
}
