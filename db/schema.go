// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	contact_type TEXT NOT NULL DEFAULT '',
	primary_first_name TEXT NOT NULL,
	primary_last_name TEXT NOT NULL,
	student_name TEXT NOT NULL DEFAULT '',
	student_grad_year TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	preferred_contact_method TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	school_name TEXT NOT NULL DEFAULT '',
	lead_source TEXT NOT NULL DEFAULT '',
	referred_by TEXT NOT NULL DEFAULT '',
	service_interest TEXT NOT NULL DEFAULT '',
	budget_fit TEXT NOT NULL DEFAULT '',
	priority_score TEXT NOT NULL DEFAULT '',
	lead_status TEXT NOT NULL DEFAULT 'New Lead',
	status_reason TEXT NOT NULL DEFAULT '',
	owner TEXT NOT NULL DEFAULT '',
	date_added DATETIME NOT NULL,
	last_contact_date DATETIME,
	next_follow_up_date DATETIME,
	next_step TEXT NOT NULL DEFAULT '',
	package_interested_in TEXT NOT NULL DEFAULT '',
	package_purchased TEXT NOT NULL DEFAULT '',
	start_date DATETIME,
	end_date DATETIME,
	client_status TEXT NOT NULL DEFAULT '',
	payment_status TEXT NOT NULL DEFAULT '',
	contract_sent INTEGER NOT NULL DEFAULT 0,
	contract_signed INTEGER NOT NULL DEFAULT 0,
	notes_static TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_lead_status ON contacts(lead_status);
CREATE INDEX IF NOT EXISTS idx_contacts_lead_source ON contacts(lead_source);
CREATE INDEX IF NOT EXISTS idx_contacts_next_follow_up ON contacts(next_follow_up_date);
CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);

CREATE TABLE IF NOT EXISTS interactions (
	id TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL,
	interaction_type TEXT NOT NULL,
	date DATETIME NOT NULL,
	summary TEXT NOT NULL,
	outcome TEXT NOT NULL DEFAULT '',
	next_follow_up_date DATETIME,
	logged_by TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_interactions_contact_id ON interactions(contact_id);
CREATE INDEX IF NOT EXISTS idx_interactions_date ON interactions(date);

CREATE TABLE IF NOT EXISTS audit_logs (
	id TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL,
	field TEXT NOT NULL,
	old_value TEXT NOT NULL DEFAULT '',
	new_value TEXT NOT NULL DEFAULT '',
	changed_by TEXT NOT NULL DEFAULT '',
	changed_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_contact_id ON audit_logs(contact_id);

CREATE TABLE IF NOT EXISTS sync_runs (
	id TEXT PRIMARY KEY,
	sync_type TEXT NOT NULL,
	status TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	rows_synced INTEGER NOT NULL DEFAULT 0,
	started_at DATETIME NOT NULL,
	completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_sync_runs_started_at ON sync_runs(started_at);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
