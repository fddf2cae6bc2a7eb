package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kaifri/BitunixTradezellaSync/internal/auth"
)

// ErrInvalidStartTime is returned when the credentials file carries a
// start_time that is not a valid ISO 8601 instant.
var ErrInvalidStartTime = errors.New("invalid start_time in credentials file")

// credentialsFile is the on-disk shape of the credentials JSON.
type credentialsFile struct {
	APIKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
	StartTime string `json:"start_time"` // Optional ISO 8601 export start
}

// LoadCredentials reads the API key pair from a local JSON file.
//
// The optional start_time field is the fallback export start used when no
// checkpoint file exists yet; it is returned as milliseconds since epoch
// (0 when absent, meaning "export all history"). A malformed start_time is a
// fatal configuration error, caught here before any network call.
func LoadCredentials(path string) (*auth.Credentials, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read credentials file: %w", err)
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, 0, fmt.Errorf("parse credentials file: %w", err)
	}

	creds, err := auth.NewCredentials(file.APIKey, file.SecretKey)
	if err != nil {
		return nil, 0, fmt.Errorf("credentials file %s: %w", path, err)
	}

	startMs, err := parseStartTime(file.StartTime)
	if err != nil {
		return nil, 0, err
	}

	return creds, startMs, nil
}

// parseStartTime converts an ISO 8601 instant to milliseconds since epoch.
// Accepts RFC 3339 and a bare datetime without zone (interpreted as UTC).
func parseStartTime(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, s)
		}
	}

	return t.UnixMilli(), nil
}
