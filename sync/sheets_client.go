// ABOUTME: Sheets API client setup for the spreadsheet mirror
// ABOUTME: Creates authenticated Sheets service from service-account credentials
package sync

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// NewSheetsService creates a Google Sheets API service authenticated as the
// configured service account.
func NewSheetsService(ctx context.Context, cfg *SheetsConfig) (*sheets.Service, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}

	jwtConfig := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{spreadsheetScope},
		TokenURL:   google.JWTTokenURL,
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return service, nil
}
