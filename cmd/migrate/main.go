package main

import (
	"log"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
)

// Standalone migration runner for deploys that do not want the web server
// to own schema changes.
func main() {
	config.LoadEnv()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Migration failed: ", err)
	}
	log.Println("Migrations applied")
}
