package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/demomarket/marketplace/internal/config"
	"github.com/demomarket/marketplace/internal/models"
	"github.com/demomarket/marketplace/internal/store"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	godotenv.Load()

	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	adminUsername := addAdminCmd.String("username", "", "Username for the new admin")
	adminEmail := addAdminCmd.String("email", "", "Email for the new admin")
	adminPassword := addAdminCmd.String("password", "", "Password for the new admin")

	addCategoryCmd := flag.NewFlagSet("add-category", flag.ExitOnError)
	categoryName := addCategoryCmd.String("name", "", "Name of the new category")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin' or 'add-category' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *adminUsername == "" || *adminEmail == "" || *adminPassword == "" {
			fmt.Println("username, email and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		createAdmin(*adminUsername, *adminEmail, *adminPassword)
	case "add-category":
		addCategoryCmd.Parse(os.Args[2:])
		if *categoryName == "" {
			fmt.Println("name is required")
			addCategoryCmd.PrintDefaults()
			os.Exit(1)
		}
		createCategory(*categoryName)
	default:
		fmt.Println("expected 'add-admin' or 'add-category' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Ensure schema exists if running the cli before the server
	if err := store.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	db, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func createAdmin(username, email, password string) {
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      true,
	}
	if err := db.CreateUser(user); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin '%s' created successfully.\n", username)
}

func createCategory(name string) {
	db := openStore()

	category := &models.Category{Name: name}
	if err := db.CreateCategory(category); err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}

	fmt.Printf("Category '%s' created with id %d.\n", name, category.ID)
}
