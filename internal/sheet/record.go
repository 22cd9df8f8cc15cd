// Package sheet decodes policy spreadsheets into header-keyed records.
package sheet

import "strings"

// Column headers the dashboard reads.
const (
	ColClientName      = "Client Name"
	ColNetPremium      = "Net Premium"
	ColGrossPremium    = "Gross Premium"
	ColPolicyNo        = "Policy No"
	ColPolicyName      = "Policy Name"
	ColPolicyEndDate   = "Policy End Date"
	ColNextPremiumDate = "Next Premium Date"
	ColSalesTarget     = "Sales Target"
)

// Record is one spreadsheet row keyed by header. Missing cells read as "".
type Record map[string]string

// Get returns the trimmed cell under header.
func (r Record) Get(header string) string {
	return strings.TrimSpace(r[header])
}

// Valid reports whether the row identifies a policy at all.
func (r Record) Valid() bool {
	return r.Get(ColClientName) != "" || r.Get(ColNetPremium) != "" || r.Get(ColPolicyNo) != ""
}
