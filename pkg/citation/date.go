package citation

import (
	"fmt"

	"github.com/CutieJi/citation-generator/pkg/types"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// AP-style abbreviations; May, June and July are never shortened.
var monthAbbreviations = [12]string{
	"Jan.", "Feb.", "Mar.", "Apr.", "May", "June",
	"July", "Aug.", "Sept.", "Oct.", "Nov.", "Dec.",
}

// MonthName returns the English name of month (1-12), or its abbreviation
// when abbreviated is set. Out-of-range months yield "".
func MonthName(month int, abbreviated bool) string {
	if month < 1 || month > 12 {
		return ""
	}
	if abbreviated {
		return monthAbbreviations[month-1]
	}
	return monthNames[month-1]
}

// FormatDate renders an ISO date string (YYYY-MM-DD) in style. It returns
// "" when raw is not a valid calendar date; callers treat the empty string
// as "no usable date".
func FormatDate(raw string, style Style) string {
	date, err := types.ParseDate(raw)
	if err != nil {
		return ""
	}
	return FormatCalendarDate(date, style)
}

// FormatCalendarDate renders date in style:
//
//	APA, Chicago  "March 5, 2023"
//	MLA           "5 Mar. 2023"
//
// Any other style value falls back to the numeric "2023-03-05".
func FormatCalendarDate(date types.Date, style Style) string {
	switch style {
	case StyleAPA, StyleChicago:
		return fmt.Sprintf("%s %d, %d", MonthName(date.Month, false), date.Day, date.Year)
	case StyleMLA:
		return fmt.Sprintf("%d %s %d", date.Day, MonthName(date.Month, true), date.Year)
	default:
		return date.String()
	}
}
