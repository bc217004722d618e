package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB        *sql.DB
	JWTSecret string
	Port      string
	Timezone  string
}

var AppConfig *Config

// LoadEnv loads variables from .env if present; deployed environments set them directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := getEnv("DB_NAME", "school_management")
		sslmode := getEnv("DB_SSLMODE", "disable")

		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s connect_timeout=60",
			host, port, user, dbname, sslmode)
		if password != "" {
			psqlInfo += " password=" + password
		}
		log.Printf("Connecting to PostgreSQL at %s:%s/%s", host, port, dbname)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB:        db,
		JWTSecret: getEnv("JWT_SECRET", "school-management-secret-key"),
		Port:      getEnv("PORT", "8080"),
		Timezone:  getEnv("APP_TIMEZONE", "Asia/Dhaka"),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func JWTSecret() []byte {
	if AppConfig != nil && AppConfig.JWTSecret != "" {
		return []byte(AppConfig.JWTSecret)
	}
	return []byte(getEnv("JWT_SECRET", "school-management-secret-key"))
}
