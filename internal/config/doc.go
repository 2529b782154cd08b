// Package config provides environment-based configuration.
//
// Loads from the process environment (a .env file is applied by main via
// godotenv before Load runs). Validates required upstream credentials and
// numeric bounds at startup.
package config
