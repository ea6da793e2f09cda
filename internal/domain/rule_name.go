package domain

// RuleName is a named rule definition with its JSON, template and SQL fragments.
type RuleName struct {
	ID          int64
	Name        string
	Description string
	JSON        string
	Template    string
	SQLStr      string
	SQLPart     string
}
