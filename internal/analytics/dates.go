package analytics

import (
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// DateLayout is the display layout for renewal dates (dd/mm/yyyy).
const DateLayout = "02/01/2006"

// Day-first layouts tried when free-form parsing fails.
var dayFirstLayouts = []string{DateLayout, "02-01-2006", "02.01.2006", "2/1/2006"}

// ParseDate reads a spreadsheet date cell as a calendar day in loc.
// Bare numbers are Excel serial dates. It reports false for empty or
// unparseable cells.
func ParseDate(cell string, loc *time.Location) (time.Time, bool) {
	if cell == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return day(t, loc), true
	}

	if t, err := dateparse.ParseIn(cell, loc); err == nil {
		return day(t.In(loc), loc), true
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.ParseInLocation(layout, cell, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func day(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// FormatDate renders a date as dd/mm/yyyy, or "N/A" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(DateLayout)
}

// MonthName returns the short English month name.
func MonthName(m time.Month) string {
	return m.String()[:3]
}
