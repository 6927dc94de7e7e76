package tombi

import "regexp"

// Anchored date/time shape patterns, checked in priority order: offset
// date-time, then local date-time, then local date, then local time.
// Mirrors the teacher's validate.go dtRe* family, folded forward into
// classification instead of a post-hoc validation pass.
var (
	dtReOffsetDT  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt ]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})$`)
	dtReLocalDT   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt ]\d{2}:\d{2}:\d{2}(\.\d+)?$`)
	dtReLocalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dtReLocalTime = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?$`)
)

// classifyDateTimeToken returns the matching datetime TokenKind, or 0
// (not a valid TokenKind value) if s has no date/time shape at all.
func classifyDateTimeToken(s string) TokenKind {
	switch {
	case dtReOffsetDT.MatchString(s):
		return TokOffsetDateTime
	case dtReLocalDT.MatchString(s):
		return TokLocalDateTime
	case dtReLocalDate.MatchString(s):
		return TokLocalDate
	case dtReLocalTime.MatchString(s):
		return TokLocalTime
	default:
		return 0
	}
}

// validateDateTimeText re-validates calendar/clock field ranges once a
// token has already been classified as a datetime shape (the regexes
// above only check digit placement, not e.g. month <= 12).
func validateDateTimeText(kind TokenKind, text string) string {
	switch kind { //nolint:exhaustive
	case TokOffsetDateTime, TokLocalDateTime:
		datePart := text[:10]
		timePart := text[11:19]
		if msg := validateDateParts(datePart); msg != "" {
			return msg
		}
		return validateTimeParts(timePart)
	case TokLocalDate:
		return validateDateParts(text)
	case TokLocalTime:
		return validateTimeParts(text[:8])
	default:
		return ""
	}
}

func validateDateParts(s string) string {
	year := atoi2(s[0:4])
	month := atoi2(s[5:7])
	day := atoi2(s[8:10])
	if month < 1 || month > 12 {
		return "month out of range: " + s
	}
	maxDay := daysInMonth(year, month)
	if day < 1 || day > maxDay {
		return "day out of range: " + s
	}
	return ""
}

func validateTimeParts(s string) string {
	hour := atoi2(s[0:2])
	minute := atoi2(s[3:5])
	second := atoi2(s[6:8])
	if hour > 23 {
		return "hour out of range: " + s
	}
	if minute > 59 {
		return "minute out of range: " + s
	}
	if second > 60 { // 60 permitted for a leap second
		return "second out of range: " + s
	}
	return ""
}

func atoi2(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}
