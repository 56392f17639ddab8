// Package config snapshots the process environment into a plain map and
// provides typed lookups over it. The record-store credentials are the
// only required keys; everything else falls back to a default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Required environment variables.
const (
	KeyAirtableAPIKey = "AIRTABLE_API_KEY"
	KeyAirtableBase   = "BASE"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if key != "" {
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// StoreCredentials carries the key and base id of the hosted record store.
type StoreCredentials struct {
	APIKey string
	BaseID string
}

// GetStoreCredentials reads the record-store credentials, failing when
// either is unset. The server cannot run without them.
func GetStoreCredentials(config map[string]string) (StoreCredentials, error) {
	apiKey, err := RequireString(config, KeyAirtableAPIKey)
	if err != nil {
		return StoreCredentials{}, err
	}
	baseID, err := RequireString(config, KeyAirtableBase)
	if err != nil {
		return StoreCredentials{}, err
	}
	return StoreCredentials{APIKey: apiKey, BaseID: baseID}, nil
}

// RequireString returns the value for key, or an error naming the missing
// environment variable.
func RequireString(config map[string]string, key string) (string, error) {
	if val, ok := config[key]; ok && val != "" {
		return val, nil
	}
	return "", fmt.Errorf("required environment variable %s is not set", key)
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}
