// ABOUTME: Serve CLI command
// ABOUTME: Starts the JSON API server with optional Sheets mirror wiring
package cli

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"github.com/lonestarscholars/crm/auth"
	"github.com/lonestarscholars/crm/sync"
	"github.com/lonestarscholars/crm/web"
)

// ServeCommand starts the API server.
func ServeCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	_ = fs.Parse(args)

	var syncer *sync.Syncer
	cfg := sync.LoadSheetsConfig()
	if cfg.IsConfigured() {
		svc, err := sync.NewSheetsService(context.Background(), cfg)
		if err != nil {
			return err
		}
		syncer = sync.NewSyncer(database, sync.NewSheetsMirror(svc, cfg.SpreadsheetID))
	} else {
		log.Println("Google Sheets mirror not configured; sync endpoints will report it")
	}

	server := web.NewServer(database, auth.NewAuthenticator(), syncer)
	return server.Start(*port)
}
