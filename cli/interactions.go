// ABOUTME: Interaction CLI commands
// ABOUTME: Logs touchpoints and shows a contact's interaction history
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/crm"
	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

// LogInteractionCommand records a touchpoint with a contact.
func LogInteractionCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("log-interaction", flag.ExitOnError)
	interactionType := fs.String("type", "Call", "Interaction type")
	summary := fs.String("summary", "", "Interaction summary (required)")
	outcome := fs.String("outcome", "", "Outcome")
	date := fs.String("date", "", "Interaction date (YYYY-MM-DD, default today)")
	followUp := fs.String("follow-up", "", "Next follow-up date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: log-interaction [flags] <contact-id>")
	}
	contactID, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	interaction := &models.Interaction{
		ContactID:       contactID,
		InteractionType: *interactionType,
		Summary:         *summary,
		Outcome:         *outcome,
		LoggedBy:        cliAuthor,
	}
	if when, err := parseDateFlag("date", *date); err != nil {
		return err
	} else if when != nil {
		interaction.Date = *when
	}
	if interaction.NextFollowUpDate, err = parseDateFlag("follow-up", *followUp); err != nil {
		return err
	}

	if err := crm.LogInteraction(database, interaction); err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}

	fmt.Printf("✓ Interaction logged: %s on %s\n", interaction.InteractionType, interaction.Date.Format(models.DateOnly))
	return nil
}

// InteractionHistoryCommand prints a contact's interaction history.
func InteractionHistoryCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("interactions", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: interactions <contact-id>")
	}
	contactID, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	interactions, err := db.ListInteractionsByContact(database, contactID)
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}
	if len(interactions) == 0 {
		fmt.Println("No interactions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tSUMMARY\tOUTCOME")
	for i := range interactions {
		in := &interactions[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			in.Date.Format(models.DateOnly), in.InteractionType, in.Summary, in.Outcome)
	}
	return w.Flush()
}
