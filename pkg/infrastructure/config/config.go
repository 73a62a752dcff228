package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvFolder        = "AGING_FOLDER"
	EnvReferenceDate = "AGING_REFERENCE_DATE"
	EnvAddr          = "AGING_ADDR"
	EnvVerbose       = "AGING_VERBOSE"
	EnvMaxReports    = "AGING_MAX_REPORTS"
)

// Defaults used when the environment leaves a setting empty
const (
	DefaultAddr       = ":8080"
	DefaultMaxReports = 32
)

// Config holds settings shared by every subcommand. Command line flags use
// these values as their defaults.
type Config struct {
	Folder        string
	ReferenceDate string
	Addr          string
	Verbose       bool
	MaxReports    int
}

// Load reads .env files (if present) into the environment and builds a Config
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file, using environment variables: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment
func FromEnv() Config {
	return Config{
		Folder:        os.Getenv(EnvFolder),
		ReferenceDate: strings.TrimSpace(os.Getenv(EnvReferenceDate)),
		Addr:          stringOr(os.Getenv(EnvAddr), DefaultAddr),
		Verbose:       boolOr(os.Getenv(EnvVerbose), false),
		MaxReports:    intOr(os.Getenv(EnvMaxReports), DefaultMaxReports),
	}
}

func stringOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func boolOr(v string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func intOr(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
