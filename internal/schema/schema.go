package schema

import (
	"fmt"
	"strings"
)

// Column is one column of the queryable ticket table.
type Column struct {
	Name string
	Type string
}

// Descriptor is the static description of the single queryable table. It is
// configuration, not discovered at runtime: renaming the live table requires
// updating this descriptor.
type Descriptor struct {
	Table        string
	StatusColumn string
	Columns      []Column
}

// Tickets returns the descriptor for the incident ticket table.
func Tickets() Descriptor {
	return Descriptor{
		Table:        "ticketdetails",
		StatusColumn: "TicketStatus",
		Columns: []Column{
			{Name: "Title", Type: "varchar"},
			{Name: "TAT", Type: "int"},
			{Name: "IncidentID", Type: "varchar"},
			{Name: "TicketStatus", Type: "varchar"},
			{Name: "TicketSubmittedDateTime", Type: "timestamp"},
			{Name: "TicketClosedDateTime", Type: "timestamp"},
			{Name: "ReqName", Type: "varchar"},
			{Name: "ReqEmail", Type: "varchar"},
			{Name: "TypeOfTicket", Type: "varchar"},
			{Name: "Category", Type: "varchar"},
			{Name: "PrioritySeverity", Type: "varchar"},
			{Name: "Product", Type: "varchar"},
			{Name: "ReportedBy", Type: "varchar"},
			{Name: "SubCategory", Type: "varchar"},
			{Name: "SubSubCategory", Type: "varchar"},
			{Name: "AssignPerson", Type: "varchar"},
			{Name: "AssignPersonEmail", Type: "varchar"},
			{Name: "AssignGroup", Type: "varchar"},
		},
	}
}

// Render produces the human-readable schema listing embedded in prompts.
// Same descriptor, byte-identical output.
func (d Descriptor) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Table: %s\n\nColumns:\n", d.Table)
	for _, col := range d.Columns {
		fmt.Fprintf(&sb, "- %s (%s)\n", col.Name, col.Type)
	}
	return sb.String()
}

// StatusVocabulary maps free-text status phrases, as users type them, to the
// canonical values stored in the status column. Used only during repair.
func StatusVocabulary() map[string]string {
	return map[string]string{
		"new incident":    "New",
		"new case":        "New",
		"pending":         "New",
		"open":            "New",
		"in progress":     "In Progress",
		"assign to group": "Assign to Group",
	}
}
