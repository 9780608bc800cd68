package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/liorhadad/staffing-api-go/pkg/auth"
	"github.com/liorhadad/staffing-api-go/pkg/database"
)

// adminctl creates or resets an admin account: adminctl <email> <password>
func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	if len(os.Args) < 3 {
		fmt.Println("Usage: adminctl <email> <password>")
		os.Exit(1)
	}

	email := os.Args[1]
	password := os.Args[2]

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Printf("Error: could not hash password: %v\n", err)
		os.Exit(1)
	}

	db := database.InitDB()

	var employee database.Employee
	if err := db.Where("email = ?", email).First(&employee).Error; err == nil {
		employee.PasswordHash = hash
		employee.IsAdmin = true
		employee.Active = true
		if err := db.Save(&employee).Error; err != nil {
			fmt.Printf("Error: could not update account: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Admin access granted to existing account %s\n", email)
		return
	}

	employee = database.Employee{
		Name:         email,
		Email:        email,
		Active:       true,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.Create(&employee).Error; err != nil {
		fmt.Printf("Error: could not create account: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Admin account created for %s\n", email)
}
