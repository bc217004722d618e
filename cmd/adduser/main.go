package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

// Bootstraps an account from the command line, typically the first admin.
func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required)")
	firstName := flag.String("first", "Admin", "first name")
	lastName := flag.String("last", "User", "last name")
	role := flag.String("role", models.RoleAdmin, "role name")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(1)
	}

	config.LoadEnv()
	config.InitDB()
	defer config.GetDB().Close()

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateUser(config.GetDB(), user, []string{*role}); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created: %s %s (%s) with role %s\n", user.FirstName, user.LastName, user.Email, *role)
}
