// ABOUTME: Dashboard and export CLI commands
// ABOUTME: Prints the metrics snapshot and writes the contacts CSV
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/export"
	"github.com/lonestarscholars/crm/models"
	"github.com/lonestarscholars/crm/viz"
)

// DashboardCommand prints the dashboard snapshot.
func DashboardCommand(database *sql.DB, args []string) error {
	stats, err := viz.GenerateDashboardStats(database, time.Now())
	if err != nil {
		return fmt.Errorf("failed to compute dashboard: %w", err)
	}

	fmt.Println("=== Pipeline ===")
	for _, status := range models.LeadStatuses {
		if count := stats.StatusCounts[status]; count > 0 {
			fmt.Printf("  %-22s %d\n", status, count)
		}
	}

	fmt.Println("\n=== Overview ===")
	fmt.Printf("  Total contacts:    %d\n", stats.TotalContacts)
	fmt.Printf("  Active clients:    %d\n", stats.ActiveClients)
	fmt.Printf("  In pipeline:       %d\n", stats.PipelineCount)
	fmt.Printf("  New this month:    %d\n", stats.NewThisMonth)
	fmt.Printf("  Conversion rate:   %.1f%%\n", stats.ConversionRate)

	fmt.Println("\n=== Follow-ups ===")
	fmt.Printf("  Overdue:           %d\n", stats.OverdueFollowUps)
	fmt.Printf("  Due today:         %d\n", stats.FollowUpsDueToday)

	if len(stats.UpcomingFollowUps) > 0 {
		fmt.Println("\n=== Upcoming (7 days) ===")
		for i := range stats.UpcomingFollowUps {
			c := &stats.UpcomingFollowUps[i]
			when := ""
			if c.NextFollowUpDate != nil {
				when = c.NextFollowUpDate.Format(models.DateOnly)
			}
			fmt.Printf("  %s  %-24s %s\n", when, c.DisplayName(), c.NextStep)
		}
	}

	if len(stats.RecentInteractions) > 0 {
		fmt.Println("\n=== Recent interactions ===")
		for i := range stats.RecentInteractions {
			in := &stats.RecentInteractions[i]
			fmt.Printf("  %s  %-8s %s: %s\n",
				in.Date.Format(models.DateOnly), in.InteractionType, in.ContactName, in.Summary)
		}
	}
	return nil
}

// ExportCommand writes the contacts CSV to a file or stdout.
func ExportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: contacts_<date>.csv)")
	_ = fs.Parse(args)

	contacts, err := db.AllContactsByDateAdded(database)
	if err != nil {
		return fmt.Errorf("failed to read contacts: %w", err)
	}

	path := *output
	if path == "" {
		path = export.Filename(time.Now())
	}
	if path == "-" {
		return export.WriteContacts(os.Stdout, contacts)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteContacts(f, contacts); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	fmt.Printf("✓ Exported %d contacts to %s\n", len(contacts), path)
	return nil
}
