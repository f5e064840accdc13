package refiner

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceRe  = regexp.MustCompile("(?i)```(?:json)?")
	arrayRe  = regexp.MustCompile(`(?s)(\[.*\])`)
	objectRe = regexp.MustCompile(`(?s)\{[^{}]+\}`)
)

// extractJSONArray recovers a JSON array of objects from raw model output.
// Models wrap answers in markdown fences, nest the array under a
// "transactions" key, or truncate mid-array when they run out of tokens, so
// several salvage strategies run in order before giving up.
func extractJSONArray(raw string) []json.RawMessage {
	// Strategy 1: the response is already clean JSON.
	if rows, ok := tryParse(raw); ok {
		return rows
	}

	// Strategy 2: strip markdown fences.
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
	if rows, ok := tryParse(cleaned); ok {
		return rows
	}

	// Strategy 3: first [...] block anywhere in the text.
	if m := arrayRe.FindStringSubmatch(cleaned); m != nil {
		if rows, ok := tryParse(m[1]); ok {
			return rows
		}
	}

	// Strategy 4: repair a truncated array by cutting at the last complete
	// object.
	if strings.HasPrefix(cleaned, "[") && !strings.HasSuffix(cleaned, "]") {
		if rows, ok := tryParse(repairTruncated(cleaned)); ok {
			return rows
		}
	}

	// Strategy 5: scan for individual objects.
	var rows []json.RawMessage
	for _, obj := range objectRe.FindAllString(cleaned, -1) {
		if json.Valid([]byte(obj)) {
			rows = append(rows, json.RawMessage(obj))
		}
	}
	return rows
}

// tryParse accepts either a bare array or an object with a "transactions"
// key, and returns the member objects.
func tryParse(s string) ([]json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(s), &arr); err == nil {
		return arr, true
	}

	var wrapper struct {
		Transactions []json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal([]byte(s), &wrapper); err == nil && wrapper.Transactions != nil {
		return wrapper.Transactions, true
	}

	return nil, false
}

func repairTruncated(s string) string {
	if last := strings.LastIndex(s, "},"); last != -1 {
		return s[:last+1] + "\n]"
	}
	if last := strings.LastIndex(s, "{"); last != -1 {
		return s[:last] + "\n]"
	}
	return s
}
