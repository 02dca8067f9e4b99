// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// JWTSecret signs and verifies bearer tokens for user resolution.
	JWTSecret string

	// AdminToken guards the administrative endpoints (force counter
	// writes, score resets). Empty disables them entirely.
	AdminToken string

	// RolloverHour is the UTC hour at which focus_seconds_today resets.
	RolloverHour int

	// PointsPerItem is the score awarded for each newly advanced item.
	PointsPerItem int64

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "s", "", "jwt signing secret")
	flag.StringVar(&options.AdminToken, "t", "", "admin capability token")
	flag.IntVar(&options.RolloverHour, "r", 0, "utc hour of the daily focus rollover")
	flag.Int64Var(&options.PointsPerItem, "p", 10, "score points per completed item")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	// Load a .env file if present so env overrides below can see it.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		options.AdminToken = token
	}
	if hour := os.Getenv("ROLLOVER_HOUR"); hour != "" {
		if h, err := strconv.Atoi(hour); err == nil && h >= 0 && h <= 23 {
			options.RolloverHour = h
		}
	}
	if points := os.Getenv("POINTS_PER_ITEM"); points != "" {
		if p, err := strconv.ParseInt(points, 10, 64); err == nil && p >= 0 {
			options.PointsPerItem = p
		}
	}

	return options
}
