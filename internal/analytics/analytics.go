// Package analytics derives dashboard figures from policy records: premium
// totals, renewals falling due this month and next, and sales targets.
package analytics

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Iron-Ham/scrolldash/internal/sheet"
)

// Metrics are the headline premium figures.
type Metrics struct {
	TotalPremium  float64 `yaml:"total_premium"`
	GrossPremium  float64 `yaml:"gross_premium"`
	TotalPolicies int     `yaml:"total_policies"`
	AvgPremium    float64 `yaml:"avg_premium"`
}

// RenewalItem is one policy falling due in a month.
type RenewalItem struct {
	Client  string    `yaml:"client"`
	Date    string    `yaml:"date"`
	Due     time.Time `yaml:"-"`
	Premium float64   `yaml:"premium"`
	Policy  string    `yaml:"policy"`
}

// MonthRenewals groups the renewals of one calendar month.
type MonthRenewals struct {
	Month string        `yaml:"month"`
	Year  int           `yaml:"year"`
	Items []RenewalItem `yaml:"items"`
}

// Summary is everything the dashboard renders.
type Summary struct {
	Metrics      Metrics          `yaml:"metrics"`
	Renewals     [2]MonthRenewals `yaml:"renewals"`
	SalesTargets []string         `yaml:"sales_targets"`
}

// Compute builds the summary for records relative to now. Renewal windows
// are the calendar month containing now and the one after it, in now's
// location.
func Compute(records []sheet.Record, now time.Time) Summary {
	return Summary{
		Metrics:      computeMetrics(records),
		Renewals:     upcomingRenewals(records, now),
		SalesTargets: salesTargets(records),
	}
}

func computeMetrics(records []sheet.Record) Metrics {
	var m Metrics
	for _, r := range records {
		m.TotalPremium += ParseAmount(r.Get(sheet.ColNetPremium))
		m.GrossPremium += ParseAmount(r.Get(sheet.ColGrossPremium))
	}
	m.TotalPolicies = len(records)
	if m.TotalPolicies > 0 {
		m.AvgPremium = m.TotalPremium / float64(m.TotalPolicies)
	}
	return m
}

func upcomingRenewals(records []sheet.Record, now time.Time) [2]MonthRenewals {
	loc := now.Location()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	var out [2]MonthRenewals
	for i := range out {
		start := thisMonth.AddDate(0, i, 0)
		end := start.AddDate(0, 1, 0)

		items := make([]RenewalItem, 0)
		for _, r := range records {
			due, ok := renewalDate(r, loc)
			if !ok || due.Before(start) || !due.Before(end) {
				continue
			}
			items = append(items, RenewalItem{
				Client:  firstNonEmpty(r.Get(sheet.ColClientName), "Unknown"),
				Date:    FormatDate(due),
				Due:     due,
				Premium: ParseAmount(r.Get(sheet.ColNetPremium)),
				Policy:  firstNonEmpty(r.Get(sheet.ColPolicyName), r.Get(sheet.ColPolicyNo), "N/A"),
			})
		}
		sort.SliceStable(items, func(a, b int) bool { return items[a].Premium > items[b].Premium })

		out[i] = MonthRenewals{Month: MonthName(start.Month()), Year: start.Year(), Items: items}
	}
	return out
}

// renewalDate prefers the policy end date and falls back to the next premium date.
func renewalDate(r sheet.Record, loc *time.Location) (time.Time, bool) {
	if t, ok := ParseDate(r.Get(sheet.ColPolicyEndDate), loc); ok {
		return t, true
	}
	return ParseDate(r.Get(sheet.ColNextPremiumDate), loc)
}

func salesTargets(records []sheet.Record) []string {
	seen := make(map[string]struct{})
	targets := make([]string, 0)
	for _, r := range records {
		t := r.Get(sheet.ColSalesTarget)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
