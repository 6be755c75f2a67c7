// Package aggregate turns a flat list of fraud reports into phone-number
// centric summaries: grouping, free-text search, fixed-size paging and the
// clean-number lookup. It is pure and side-effect free so every listing
// endpoint shares the one implementation.
package aggregate

import (
	"sort"
	"strings"
	"time"
)

// UnknownReporter replaces a blank reporter name in group summaries.
const UnknownReporter = "unknown"

// Report is the engine's view of one submitted complaint.
type Report struct {
	ID               string    `json:"id"`
	PhoneNumber      string    `json:"phone_number"`
	ReporterName     string    `json:"reporter_name"`
	Description      string    `json:"description"`
	EvidenceImageURL string    `json:"evidence_image_url,omitempty"`
	City             string    `json:"city,omitempty"`
	Status           string    `json:"status,omitempty"`
	UserID           uint      `json:"user_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// PhoneGroup aggregates every report sharing one phone number. Rating and
// RatingCount are filled in by the caller, they are not derived from reports.
type PhoneGroup struct {
	PhoneNumber     string   `json:"phone_number"`
	ReporterNames   []string `json:"reporter_names"`
	Names           string   `json:"names"`
	Reports         []Report `json:"reports"`
	TotalReports    int      `json:"total_reports"`
	Rating          float64  `json:"rating"`
	RatingCount     int      `json:"rating_count"`
	HasNoComplaints bool     `json:"has_no_complaints"`
}

// Group buckets reports by exact-match phone number and returns one group per
// distinct number, sorted by descending report count. Ties keep the order the
// numbers were first seen in the input, so the output is deterministic.
// Reports with an empty phone number cannot be grouped and are dropped.
//
// known is the set of numbers referenced somewhere (registry, lookups); the
// second return value is the subset of known numbers that own zero reports,
// used for the clean-number affirmation.
func Group(reports []Report, known []string) ([]PhoneGroup, []string) {
	buckets := make(map[string]*PhoneGroup)
	var order []string

	for _, r := range reports {
		if r.PhoneNumber == "" {
			continue
		}
		g, ok := buckets[r.PhoneNumber]
		if !ok {
			g = &PhoneGroup{PhoneNumber: r.PhoneNumber}
			buckets[r.PhoneNumber] = g
			order = append(order, r.PhoneNumber)
		}
		name := r.ReporterName
		if name == "" {
			name = UnknownReporter
		}
		if !containsString(g.ReporterNames, name) {
			g.ReporterNames = append(g.ReporterNames, name)
		}
		annotated := r
		annotated.ReporterName = name
		g.Reports = append(g.Reports, annotated)
		g.TotalReports++
	}

	groups := make([]PhoneGroup, 0, len(order))
	for _, phone := range order {
		g := buckets[phone]
		g.Names = strings.Join(g.ReporterNames, ", ")
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalReports > groups[j].TotalReports
	})

	var clean []string
	for _, phone := range known {
		if phone == "" {
			continue
		}
		if _, reported := buckets[phone]; !reported {
			clean = append(clean, phone)
		}
	}

	return groups, clean
}

// Filter returns the ordered subsequence of groups matching term: a
// case-insensitive substring of the phone number, the joined reporter names,
// or any member report's description. A blank term returns groups unchanged.
func Filter(groups []PhoneGroup, term string) []PhoneGroup {
	term = strings.TrimSpace(term)
	if term == "" {
		return groups
	}
	needle := strings.ToLower(term)

	filtered := make([]PhoneGroup, 0, len(groups))
	for _, g := range groups {
		if matches(g, needle) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// CleanMatch reports whether term points at a number with a clean record.
// Callers render the clean-number affirmation when the filtered result is
// empty and CleanMatch is true.
func CleanMatch(clean []string, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}
	needle := strings.ToLower(term)
	for _, phone := range clean {
		if strings.Contains(strings.ToLower(phone), needle) {
			return true
		}
	}
	return false
}

func matches(g PhoneGroup, needle string) bool {
	if strings.Contains(strings.ToLower(g.PhoneNumber), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(g.Names), needle) {
		return true
	}
	for _, r := range g.Reports {
		if strings.Contains(strings.ToLower(r.Description), needle) {
			return true
		}
	}
	return false
}

func containsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}
	return false
}
