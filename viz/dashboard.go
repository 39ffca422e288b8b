// ABOUTME: Dashboard statistics aggregation
// ABOUTME: Computes pipeline counts, conversion rate, and follow-up windows from live data
package viz

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lonestarscholars/crm/db"
	"github.com/lonestarscholars/crm/models"
)

type DashboardStats struct {
	StatusCounts map[string]int `json:"statusCounts"`
	SourceCounts map[string]int `json:"sourceCounts"`
	// WonBySource is keyed identically to SourceCounts so the two join into
	// a per-source conversion view.
	WonBySource map[string]int `json:"wonBySource"`

	TotalContacts     int `json:"totalContacts"`
	ActiveClients     int `json:"activeClients"`
	OverdueFollowUps  int `json:"overdueFollowUps"`
	FollowUpsDueToday int `json:"followUpsDueToday"`
	NewThisMonth      int `json:"newThisMonth"`
	PipelineCount     int `json:"pipelineCount"`

	// ConversionRate is won / total-excluding-do-not-contact * 100, one
	// decimal place, 0 when there is nothing to divide.
	ConversionRate float64 `json:"conversionRate"`

	RecentInteractions []models.InteractionWithContact `json:"recentInteractions"`
	UpcomingFollowUps  []models.Contact                `json:"upcomingFollowUps"`
}

const (
	recentInteractionLimit = 5
	upcomingFollowUpLimit  = 10
	upcomingWindowDays     = 7
)

// GenerateDashboardStats computes the dashboard snapshot from current store
// contents. now anchors every window: the overdue cutoff, the local calendar
// day for due-today, the month for new-this-month, and the 7-day upcoming
// range. Window edges are bound in UTC to match how stored times compare.
func GenerateDashboardStats(database *sql.DB, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{
		StatusCounts: make(map[string]int),
		SourceCounts: make(map[string]int),
		WonBySource:  make(map[string]int),
	}

	if err := groupCount(database, "lead_status", "", stats.StatusCounts); err != nil {
		return nil, err
	}
	if err := groupCount(database, "lead_source", "", stats.SourceCounts); err != nil {
		return nil, err
	}
	if err := groupCount(database, "lead_source", "lead_status = ?", stats.WonBySource, models.StatusWon); err != nil {
		return nil, err
	}

	var err error
	if stats.TotalContacts, err = countWhere(database, ""); err != nil {
		return nil, err
	}

	// Two independent signals, OR'd: a contact can be an active client by
	// lead status or by client status without the two agreeing.
	if stats.ActiveClients, err = countWhere(database,
		"lead_status = ? OR client_status = ?", models.StatusWon, models.ClientActive); err != nil {
		return nil, err
	}

	excl := exclusionArgs()
	overdueArgs := append([]any{now.UTC()}, excl...)
	if stats.OverdueFollowUps, err = countWhere(database,
		"next_follow_up_date IS NOT NULL AND next_follow_up_date < ? AND lead_status NOT IN "+exclusionPlaceholders(),
		overdueArgs...); err != nil {
		return nil, err
	}

	// Calendar day in the caller's zone, both edges inclusive
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := endOfDay(now)
	if stats.FollowUpsDueToday, err = countWhere(database,
		"next_follow_up_date >= ? AND next_follow_up_date <= ?", todayStart.UTC(), todayEnd.UTC()); err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if stats.NewThisMonth, err = countWhere(database, "date_added >= ?", monthStart.UTC()); err != nil {
		return nil, err
	}

	pipelineArgs := make([]any, len(models.PipelineStatuses))
	for i, s := range models.PipelineStatuses {
		pipelineArgs[i] = s
	}
	if stats.PipelineCount, err = countWhere(database,
		"lead_status IN ("+placeholders(len(models.PipelineStatuses))+")", pipelineArgs...); err != nil {
		return nil, err
	}

	totalExclDNC, err := countWhere(database, "lead_status != ?", models.StatusDoNotContact)
	if err != nil {
		return nil, err
	}
	wonCount, err := countWhere(database, "lead_status = ?", models.StatusWon)
	if err != nil {
		return nil, err
	}
	if totalExclDNC > 0 {
		stats.ConversionRate = math.Round(float64(wonCount)/float64(totalExclDNC)*1000) / 10
	}

	if stats.RecentInteractions, err = db.RecentInteractions(database, recentInteractionLimit); err != nil {
		return nil, err
	}

	if stats.UpcomingFollowUps, err = upcomingFollowUps(database, now); err != nil {
		return nil, err
	}

	return stats, nil
}

// endOfDay returns the last representable instant of t's local calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// upcomingFollowUps lists contacts due within the next seven days of now,
// ascending. The window opens after the local day ends, so a follow-up due
// today is counted as due-today and never as upcoming.
func upcomingFollowUps(database *sql.DB, now time.Time) ([]models.Contact, error) {
	todayEnd := endOfDay(now)
	weekFromNow := now.AddDate(0, 0, upcomingWindowDays)

	args := append([]any{todayEnd.UTC(), weekFromNow.UTC()}, exclusionArgs()...)
	args = append(args, upcomingFollowUpLimit)
	rows, err := database.Query(`
		SELECT id FROM contacts
		WHERE next_follow_up_date > ? AND next_follow_up_date <= ?
		  AND lead_status NOT IN `+exclusionPlaceholders()+`
		ORDER BY next_follow_up_date ASC
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse contact ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	contacts := make([]models.Contact, 0, len(ids))
	for _, id := range ids {
		c, err := db.GetContact(database, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			contacts = append(contacts, *c)
		}
	}
	return contacts, nil
}

func groupCount(database *sql.DB, column, where string, dest map[string]int, args ...any) error {
	query := "SELECT " + column + ", COUNT(*) FROM contacts"
	if where != "" {
		query += " WHERE " + where
	}
	query += " GROUP BY " + column

	rows, err := database.Query(query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}

func countWhere(database *sql.DB, where string, args ...any) (int, error) {
	query := "SELECT COUNT(*) FROM contacts"
	if where != "" {
		query += " WHERE " + where
	}
	var count int
	err := database.QueryRow(query, args...).Scan(&count)
	return count, err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func exclusionPlaceholders() string {
	return "(" + placeholders(len(models.TerminalExclusions)) + ")"
}

func exclusionArgs() []any {
	args := make([]any, len(models.TerminalExclusions))
	for i, s := range models.TerminalExclusions {
		args[i] = s
	}
	return args
}
