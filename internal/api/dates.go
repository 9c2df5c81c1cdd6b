package api

import "time"

// The store keeps transaction dates in the source data's YYYY/M/D form;
// HTML date inputs submit YYYY-MM-DD. Unparseable values pass through
// unchanged.

func formatDateForDB(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format("2006/1/2")
}

func formatDateForInput(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	normalized := make([]byte, len(dateStr))
	for i := 0; i < len(dateStr); i++ {
		if dateStr[i] == '-' {
			normalized[i] = '/'
		} else {
			normalized[i] = dateStr[i]
		}
	}
	t, err := time.Parse("2006/1/2", string(normalized))
	if err != nil {
		return dateStr
	}
	return t.Format("2006-01-02")
}
