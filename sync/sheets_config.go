// ABOUTME: Google Sheets mirror configuration from environment variables
// ABOUTME: Handles service account credentials and target spreadsheet settings
package sync

import (
	"errors"
	"os"
	"strings"
)

// ErrNotConfigured reports a reconciliation refused before it started because
// the mirror credentials or target are missing. No SyncRun is recorded.
var ErrNotConfigured = errors.New("Google Sheets not configured: set GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_PRIVATE_KEY, and GOOGLE_SPREADSHEET_ID")

// SheetsConfig holds the service-account credentials and the spreadsheet the
// reconciler overwrites.
type SheetsConfig struct {
	ServiceAccountEmail string
	PrivateKey          string
	SpreadsheetID       string
}

// LoadSheetsConfig reads mirror settings from the environment. Private keys
// arriving through env files carry literal \n sequences; they are unescaped
// here.
func LoadSheetsConfig() *SheetsConfig {
	return &SheetsConfig{
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		PrivateKey:          strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
		SpreadsheetID:       os.Getenv("GOOGLE_SPREADSHEET_ID"),
	}
}

// IsConfigured reports whether every required mirror setting is present.
func (c *SheetsConfig) IsConfigured() bool {
	return c.ServiceAccountEmail != "" && c.PrivateKey != "" && c.SpreadsheetID != ""
}
