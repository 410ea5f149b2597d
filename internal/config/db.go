package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist.
// The unique indexes on nin_hash are the real duplicate-NIN guarantee;
// application-level existence checks are only a fast path.
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'board', 'officer_read', 'officer_upload', 'officer_engagement')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS nin_records (
		id BIGSERIAL PRIMARY KEY,
		nin_hash TEXT UNIQUE NOT NULL,
		nin_masked TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		gender TEXT,
		date_of_birth TIMESTAMP WITH TIME ZONE,
		state TEXT,
		lga TEXT,
		ward TEXT,
		phone TEXT,
		pvc_status TEXT NOT NULL DEFAULT 'NO',
		email TEXT,
		address TEXT,
		imported_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS registrations (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		middle_name TEXT,
		surname TEXT NOT NULL,
		nationality TEXT NOT NULL DEFAULT 'Nigerian',
		hometown TEXT,
		lga_of_origin TEXT,
		state_of_origin TEXT,
		dob TIMESTAMP WITH TIME ZONE,
		religion TEXT,
		gender TEXT,
		phone TEXT NOT NULL,
		is_whatsapp BOOLEAN NOT NULL DEFAULT FALSE,
		email TEXT,
		house_number TEXT,
		street_name TEXT,
		city TEXT,
		residence_lga TEXT,
		residence_state TEXT,
		pvc_status TEXT,
		nin_hash TEXT UNIQUE NOT NULL,
		nin_masked TEXT NOT NULL,
		image_url TEXT NOT NULL,
		emergency_name TEXT,
		emergency_rel TEXT,
		emergency_phone TEXT,
		status TEXT NOT NULL CHECK (status IN ('PENDING', 'VERIFIED', 'CONTACTED', 'COMPLETED')) DEFAULT 'PENDING',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		admin_id INT NOT NULL REFERENCES users(id),
		action TEXT NOT NULL,
		details TEXT,
		ip_address TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- Indexes for the listings and stats
	CREATE INDEX IF NOT EXISTS idx_nin_records_imported_at ON nin_records(imported_at DESC);
	CREATE INDEX IF NOT EXISTS idx_nin_records_pvc_status ON nin_records(pvc_status);
	CREATE INDEX IF NOT EXISTS idx_nin_records_state ON nin_records(state);
	CREATE INDEX IF NOT EXISTS idx_registrations_created_at ON registrations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_registrations_pvc_status ON registrations(pvc_status);
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}
