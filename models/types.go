// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Contact, Interaction, AuditLogEntry, and SyncRun structs
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID                     uuid.UUID  `json:"id"`
	ContactType            string     `json:"contactType"`
	PrimaryFirstName       string     `json:"primaryFirstName"`
	PrimaryLastName        string     `json:"primaryLastName"`
	StudentName            string     `json:"studentName,omitempty"`
	StudentGradYear        string     `json:"studentGradYear,omitempty"`
	Email                  string     `json:"email,omitempty"`
	Phone                  string     `json:"phone,omitempty"`
	PreferredContactMethod string     `json:"preferredContactMethod,omitempty"`
	City                   string     `json:"city,omitempty"`
	State                  string     `json:"state,omitempty"`
	SchoolName             string     `json:"schoolName,omitempty"`
	LeadSource             string     `json:"leadSource,omitempty"`
	ReferredBy             string     `json:"referredBy,omitempty"`
	ServiceInterest        string     `json:"serviceInterest,omitempty"`
	BudgetFit              string     `json:"budgetFit,omitempty"`
	PriorityScore          string     `json:"priorityScore,omitempty"`
	LeadStatus             string     `json:"leadStatus"`
	StatusReason           string     `json:"statusReason,omitempty"`
	Owner                  string     `json:"owner,omitempty"`
	DateAdded              time.Time  `json:"dateAdded"`
	LastContactDate        *time.Time `json:"lastContactDate,omitempty"`
	NextFollowUpDate       *time.Time `json:"nextFollowUpDate,omitempty"`
	NextStep               string     `json:"nextStep,omitempty"`
	PackageInterestedIn    string     `json:"packageInterestedIn,omitempty"`
	PackagePurchased       string     `json:"packagePurchased,omitempty"`
	StartDate              *time.Time `json:"startDate,omitempty"`
	EndDate                *time.Time `json:"endDate,omitempty"`
	ClientStatus           string     `json:"clientStatus,omitempty"`
	PaymentStatus          string     `json:"paymentStatus,omitempty"`
	ContractSent           bool       `json:"contractSent"`
	ContractSigned         bool       `json:"contractSigned"`
	NotesStatic            string     `json:"notesStatic,omitempty"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// DisplayName returns the contact's full name for lists and exports.
func (c *Contact) DisplayName() string {
	return strings.TrimSpace(c.PrimaryFirstName + " " + c.PrimaryLastName)
}

type Interaction struct {
	ID               uuid.UUID  `json:"id"`
	ContactID        uuid.UUID  `json:"contactId"`
	InteractionType  string     `json:"interactionType"`
	Date             time.Time  `json:"date"`
	Summary          string     `json:"summary"`
	Outcome          string     `json:"outcome,omitempty"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty"`
	LoggedBy         string     `json:"loggedBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// InteractionWithContact annotates an interaction with its owner's name for
// dashboard and export views.
type InteractionWithContact struct {
	Interaction
	ContactName string `json:"contactName"`
}

type AuditLogEntry struct {
	ID        uuid.UUID `json:"id"`
	ContactID uuid.UUID `json:"contactId"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

type SyncRun struct {
	ID          uuid.UUID  `json:"id"`
	SyncType    string     `json:"syncType"`
	Status      string     `json:"status"`
	Message     string     `json:"message,omitempty"`
	RowsSynced  int        `json:"rowsSynced"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Lead status constants.
const (
	StatusNewLead            = "New Lead"
	StatusContacted          = "Contacted"
	StatusDiscoveryScheduled = "Discovery Scheduled"
	StatusDiscoveryCompleted = "Discovery Completed"
	StatusProposalSent       = "Proposal Sent"
	StatusDecisionPending    = "Decision Pending"
	StatusWon                = "Won – Active Client"
	StatusNurture            = "Nurture"
	StatusLost               = "Lost"
	StatusDoNotContact       = "Do Not Contact"
)

// LeadStatuses lists every lead status in display order.
var LeadStatuses = []string{
	StatusNewLead,
	StatusContacted,
	StatusDiscoveryScheduled,
	StatusDiscoveryCompleted,
	StatusProposalSent,
	StatusDecisionPending,
	StatusWon,
	StatusNurture,
	StatusLost,
	StatusDoNotContact,
}

// PipelineStatuses are the in-progress stages counted toward the pipeline.
// Nurture, won, lost, and do-not-contact sit outside the active pipeline.
var PipelineStatuses = []string{
	StatusNewLead,
	StatusContacted,
	StatusDiscoveryScheduled,
	StatusDiscoveryCompleted,
	StatusProposalSent,
	StatusDecisionPending,
}

// TerminalExclusions never count toward follow-up metrics.
var TerminalExclusions = []string{StatusLost, StatusDoNotContact}

// Lead source constants.
var LeadSources = []string{
	"Referral",
	"Workshop",
	"School Partner",
	"Instagram",
	"Google",
	"Past Client",
	"Other",
}

// Contact type constants.
var ContactTypes = []string{"Parent", "Student", "Partner", "Other"}

// Service interest constants.
var ServiceInterests = []string{
	"Academic Planning",
	"Essays",
	"Apps",
	"Test Planning",
	"Scholarships",
	"Comprehensive",
}

// Priority score tiers.
const (
	PriorityHot  = "Hot"
	PriorityWarm = "Warm"
	PriorityCold = "Cold"
)

// Interaction type constants.
var InteractionTypes = []string{"Call", "Email", "Text", "Meeting", "Workshop", "DM"}

// Client status constants.
const (
	ClientActive    = "Active"
	ClientPaused    = "Paused"
	ClientCompleted = "Completed"
)

// Payment status constants.
var PaymentStatuses = []string{"Not invoiced", "Invoiced", "Paid", "Partial"}

// Budget fit constants.
var BudgetFits = []string{"High", "Medium", "Low", "Unknown"}

// Preferred contact method constants.
var PreferredContactMethods = []string{"Email", "Text", "Call"}

// Sync run status constants.
const (
	SyncStatusInProgress = "in_progress"
	SyncStatusSuccess    = "success"
	SyncStatusError      = "error"
)

// SyncTypeFull is the only sync kind: a full-snapshot overwrite of the mirror.
const SyncTypeFull = "full"
