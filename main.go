// ABOUTME: Entry point for the CRM server and CLI
// ABOUTME: Routes subcommands and manages database lifecycle
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/lonestarscholars/crm/cli"
	"github.com/lonestarscholars/crm/db"
)

const version = "0.1.0"

func main() {
	// Optional .env for sheets credentials and admin auth
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/lonestar-crm/crm.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("lonestar-crm version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	database, err := db.OpenDatabase(getDatabasePath(*dbPath))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Println("Database initialized successfully")
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	var cmdErr error
	switch command {
	case "serve":
		cmdErr = cli.ServeCommand(database, commandArgs)
	case "sync":
		cmdErr = cli.SyncCommand(database, commandArgs)
	case "sync-status":
		cmdErr = cli.SyncStatusCommand(database, commandArgs)
	case "export":
		cmdErr = cli.ExportCommand(database, commandArgs)
	case "dashboard":
		cmdErr = cli.DashboardCommand(database, commandArgs)
	case "add-contact":
		cmdErr = cli.AddContactCommand(database, commandArgs)
	case "list-contacts":
		cmdErr = cli.ListContactsCommand(database, commandArgs)
	case "update-contact":
		cmdErr = cli.UpdateContactCommand(database, commandArgs)
	case "delete-contact":
		cmdErr = cli.DeleteContactCommand(database, commandArgs)
	case "log-interaction":
		cmdErr = cli.LogInteractionCommand(database, commandArgs)
	case "interactions":
		cmdErr = cli.InteractionHistoryCommand(database, commandArgs)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		log.Fatalf("Error: %v", cmdErr)
	}
}

func getDatabasePath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(xdg.DataHome, "lonestar-crm", "crm.db")
}

func printUsage() {
	fmt.Printf(`lonestar-crm v%s - client pipeline tracker

USAGE:
  crm [flags] <command> [command flags]

FLAGS:
  --db-path <path>   Database path (default: ~/.local/share/lonestar-crm/crm.db)
  --init             Initialize database and exit
  --version          Show version

COMMANDS:
  serve                Start the JSON API server
    --port <n>           Port to listen on (default: 8080)

  dashboard            Print the metrics snapshot

  sync                 Export all contacts and interactions to Google Sheets
  sync-status          Show the most recent sync run

  export               Write the contacts CSV
    --output <file>      Output file, "-" for stdout

  add-contact          Add a contact
    --first-name <s>     Primary first name (required)
    --last-name <s>      Primary last name
    --type <s>           Contact type (default: Parent)
    --student <s>        Student name
    --status <s>         Lead status (default: New Lead)
    --priority <s>       Priority (Hot/Warm/Cold)
    --follow-up <date>   Next follow-up (YYYY-MM-DD)

  list-contacts        List contacts
    --status <s>         Filter by lead status
    --search <s>         Search names, email, phone, school
    --sort <field>       Sort field (default: nextFollowUpDate)

  update-contact <id>  Update a contact (flags before the ID)
    --status <s>         New lead status
    --follow-up <date>   Next follow-up (YYYY-MM-DD)
    --next-step <s>      Next step text

  delete-contact <id>  Delete a contact and its history

  log-interaction <id> Log a touchpoint (flags before the ID)
    --type <s>           Interaction type (default: Call)
    --summary <s>        Summary (required)
    --follow-up <date>   Next follow-up (YYYY-MM-DD)

  interactions <id>    Show a contact's interaction history

ENVIRONMENT:
  GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_PRIVATE_KEY, GOOGLE_SPREADSHEET_ID
                       Sheets mirror credentials and target
  ADMIN_EMAIL, ADMIN_PASSWORD_HASH, SESSION_SECRET
                       API authentication settings
`, version)
}
