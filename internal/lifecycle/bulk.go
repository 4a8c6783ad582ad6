package lifecycle

import (
	"strings"
)

// ItemResult is the outcome of one ring in a bulk operation.
type ItemResult struct {
	RingNumber string `json:"ring_number"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// BulkReport aggregates per-item results of a bulk operation. One ring's
// failure never aborts the others.
type BulkReport struct {
	Total  int          `json:"total"`
	OK     int          `json:"ok"`
	Failed int          `json:"failed"`
	Items  []ItemResult `json:"items"`
}

func (r *BulkReport) add(ring string, err error) {
	r.Total++
	if err == nil {
		r.OK++
		r.Items = append(r.Items, ItemResult{RingNumber: ring, OK: true})
		return
	}
	r.Failed++
	r.Items = append(r.Items, ItemResult{RingNumber: ring, OK: false, Error: err.Error()})
}

// ParseRingList extracts ring numbers from free-form delimited text (commas,
// semicolons, newlines, any whitespace), de-duplicated case-insensitively
// with input order preserved. Ring numbers are uppercased to their canonical
// form.
func ParseRingList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r', '\t', ' ':
			return true
		}
		return false
	})

	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		ring := strings.ToUpper(strings.TrimSpace(f))
		if ring == "" || seen[ring] {
			continue
		}
		seen[ring] = true
		out = append(out, ring)
	}
	return out
}
