package sqlgen

import "testing"

func TestIsSafeAcceptsSelect(t *testing.T) {
	for _, stmt := range []string{
		"SELECT * FROM ticketdetails",
		"select count(*) from ticketdetails where TicketStatus='New'",
		"  SELECT IncidentID FROM ticketdetails LIMIT 50;",
	} {
		if !IsSafe(stmt) {
			t.Fatalf("IsSafe(%q) = false", stmt)
		}
	}
}

func TestIsSafeRejectsNonSelect(t *testing.T) {
	for _, stmt := range []string{
		"",
		"EXPLAIN SELECT * FROM ticketdetails",
		"DELETE FROM ticketdetails",
		"WITH x AS (SELECT 1) SELECT * FROM x",
	} {
		if IsSafe(stmt) {
			t.Fatalf("IsSafe(%q) = true", stmt)
		}
	}
}

func TestIsSafeRejectsForbiddenTokensAnywhere(t *testing.T) {
	for _, stmt := range []string{
		"SELECT * FROM ticketdetails; DROP TABLE ticketdetails",
		"SELECT * FROM ticketdetails WHERE Title = 'please UPDATE me'",
		"SELECT * FROM ticketdetails -- sneaky comment",
		"SELECT 1 UNION SELECT * FROM x WHERE 'a'='a' OR 1=1; TRUNCATE ticketdetails",
	} {
		if IsSafe(stmt) {
			t.Fatalf("IsSafe(%q) = true", stmt)
		}
	}
}

// Substring matching is deliberately blunt: an innocent word containing a
// denylisted token is rejected too.
func TestIsSafeSubstringFalsePositive(t *testing.T) {
	if IsSafe("SELECT * FROM ticketdetails WHERE Title LIKE '%updated%'") {
		t.Fatal("expected rejection of statement containing UPDATE substring")
	}
}
