package sqlgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/incidentchat/incidentchat/internal/schema"
)

var incidentIDPattern = regexp.MustCompile(`(?i)inc[-\s]?(\d+)`)

var countKeywords = []string{"how many", "berapa", "count", "jumlah"}

// matchIntent checks a question against the small fixed set of high-frequency
// intents and returns a ready-made statement, bypassing the model entirely.
// Keywords cover English and Malay phrasing. Checked in a fixed order; first
// match wins, so "pending" phrasing beats generic "open" phrasing.
func matchIntent(desc schema.Descriptor, question string) (string, bool) {
	q := strings.ToLower(question)

	if (strings.Contains(q, "pending") || strings.Contains(q, "belum tutup")) && containsAny(q, countKeywords...) {
		return fmt.Sprintf("SELECT COUNT(*) AS total_pending FROM %s WHERE %s='Pending';",
			desc.Table, desc.StatusColumn), true
	}
	if containsAny(q, "open", "belum tutup", "masih buka") {
		return fmt.Sprintf("SELECT IncidentID, %[2]s, AssignPerson FROM %[1]s WHERE %[2]s IN ('Open','In Progress','Assign to Group') ORDER BY TicketSubmittedDateTime DESC LIMIT 50;",
			desc.Table, desc.StatusColumn), true
	}
	if containsAny(q, "latest", "terkini", "baru") {
		return fmt.Sprintf("SELECT IncidentID, %[2]s, TicketSubmittedDateTime FROM %[1]s ORDER BY TicketSubmittedDateTime DESC LIMIT 50;",
			desc.Table, desc.StatusColumn), true
	}
	if containsAny(q, "new case", "new cases", "kes baru") {
		return fmt.Sprintf("SELECT IncidentID, %[2]s, TicketSubmittedDateTime FROM %[1]s WHERE %[2]s='New' ORDER BY TicketSubmittedDateTime DESC LIMIT 50;",
			desc.Table, desc.StatusColumn), true
	}
	if m := incidentIDPattern.FindStringSubmatch(q); m != nil {
		return fmt.Sprintf("SELECT %[2]s FROM %[1]s WHERE IncidentID='%[3]s';",
			desc.Table, desc.StatusColumn, m[1]), true
	}
	return "", false
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
