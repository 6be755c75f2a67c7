package aggregate

import "time"

// KeyMap names the source fields the engine reads, so the same engine serves
// payloads whose shapes drifted apart (number/phone, nom/name, motifs nested
// under a customer row, and the misspelled "costumers" wrapper that is still
// in the wild). Every entry is a list of accepted aliases tried in order.
type KeyMap struct {
	Collection  []string
	Phone       []string
	Name        []string
	Description []string
	Evidence    []string
	Nested      []string
	ID          []string
	City        []string
	Status      []string
}

// DefaultKeys matches both payload generations of the upstream data.
var DefaultKeys = KeyMap{
	Collection:  []string{"reports", "customers", "costumers"},
	Phone:       []string{"phone_number", "number", "phone"},
	Name:        []string{"reporter_name", "nom", "name"},
	Description: []string{"description"},
	Evidence:    []string{"evidence_image_url", "evidence_image"},
	Nested:      []string{"motifs", "reports"},
	ID:          []string{"id"},
	City:        []string{"city"},
	Status:      []string{"status"},
}

// Rows unwraps a response payload into its row slice, trying each collection
// alias. A payload that already is a bare array is passed through.
func Rows(payload interface{}, keys KeyMap) []map[string]interface{} {
	switch p := payload.(type) {
	case []interface{}:
		return toRowMaps(p)
	case map[string]interface{}:
		for _, key := range keys.Collection {
			if v, ok := p[key]; ok {
				if list, ok := v.([]interface{}); ok {
					return toRowMaps(list)
				}
			}
		}
	}
	return nil
}

// FromRows converts loosely-shaped rows into engine reports. A row carrying a
// nested report array yields one Report per nested entry, annotated with the
// row's phone and name; a flat row yields a single Report. Malformed fields
// (missing keys, non-array nesting, wrong types) default to empty values, a
// bad row never aborts the conversion.
func FromRows(rows []map[string]interface{}, keys KeyMap) []Report {
	var out []Report
	for _, row := range rows {
		phone := firstString(row, keys.Phone)
		name := firstString(row, keys.Name)

		nested, hasNested := firstSlice(row, keys.Nested)
		if !hasNested {
			out = append(out, Report{
				ID:               firstString(row, keys.ID),
				PhoneNumber:      phone,
				ReporterName:     name,
				Description:      firstString(row, keys.Description),
				EvidenceImageURL: firstString(row, keys.Evidence),
				City:             firstString(row, keys.City),
				Status:           firstString(row, keys.Status),
				CreatedAt:        parseTime(firstString(row, []string{"created_at"})),
			})
			continue
		}

		for _, item := range nested {
			sub, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			out = append(out, Report{
				ID:               firstString(sub, keys.ID),
				PhoneNumber:      phone,
				ReporterName:     name,
				Description:      firstString(sub, keys.Description),
				EvidenceImageURL: firstString(sub, keys.Evidence),
				City:             firstString(sub, keys.City),
				Status:           firstString(sub, keys.Status),
				CreatedAt:        parseTime(firstString(sub, []string{"created_at"})),
			})
		}
	}
	return out
}

func toRowMaps(list []interface{}) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			rows = append(rows, m)
		}
	}
	return rows
}

func firstString(row map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// firstSlice reports whether any alias is present at all; a present but
// malformed (non-array) value counts as present with zero entries.
func firstSlice(row map[string]interface{}, keys []string) ([]interface{}, bool) {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			if list, ok := v.([]interface{}); ok {
				return list, true
			}
			return nil, true
		}
	}
	return nil, false
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
