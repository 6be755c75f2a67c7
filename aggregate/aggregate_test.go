package aggregate

import (
	"reflect"
	"testing"
)

func report(phone, name, desc string) Report {
	return Report{PhoneNumber: phone, ReporterName: name, Description: desc}
}

func TestGroupCompleteness(t *testing.T) {
	reports := []Report{
		report("0600", "Ahmed", "refused delivery"),
		report("0611", "Sara", "fake order"),
		report("0600", "Karim", "no show"),
		report("", "Nadia", "missing phone, dropped"),
		report("0622", "", "anonymous tip"),
	}

	groups, _ := Group(reports, nil)

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	total := 0
	seen := map[string]bool{}
	for _, g := range groups {
		if seen[g.PhoneNumber] {
			t.Fatalf("phone %q appears in more than one group", g.PhoneNumber)
		}
		seen[g.PhoneNumber] = true
		if g.TotalReports != len(g.Reports) {
			t.Errorf("group %q: TotalReports=%d but %d member reports", g.PhoneNumber, g.TotalReports, len(g.Reports))
		}
		total += g.TotalReports
	}
	if total != 4 {
		t.Errorf("expected 4 grouped reports (empty phone dropped), got %d", total)
	}
}

func TestGroupSortOrderAndTies(t *testing.T) {
	reports := []Report{
		report("0611", "a", "x"),
		report("0622", "b", "y"),
		report("0633", "c", "z"),
		report("0633", "c", "z2"),
		report("0622", "b", "y2"),
	}

	groups, _ := Group(reports, nil)

	got := make([]string, len(groups))
	for i, g := range groups {
		got[i] = g.PhoneNumber
	}
	// 0622 and 0633 both have 2 reports; 0622 was seen first.
	want := []string{"0622", "0633", "0611"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestGroupNamesDedupAndFallback(t *testing.T) {
	reports := []Report{
		report("0600", "Ahmed", "a"),
		report("0600", "", "b"),
		report("0600", "Ahmed", "c"),
		report("0600", "Sara", "d"),
	}

	groups, _ := Group(reports, nil)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	want := []string{"Ahmed", UnknownReporter, "Sara"}
	if !reflect.DeepEqual(g.ReporterNames, want) {
		t.Errorf("ReporterNames = %v, want %v", g.ReporterNames, want)
	}
	if g.Names != "Ahmed, unknown, Sara" {
		t.Errorf("Names = %q", g.Names)
	}
	if g.Reports[1].ReporterName != UnknownReporter {
		t.Errorf("blank reporter not annotated: %q", g.Reports[1].ReporterName)
	}
}

func TestGroupCleanNumbers(t *testing.T) {
	reports := []Report{
		report("0600", "Ahmed", "a"),
	}
	known := []string{"0600", "0655", "", "0677"}

	_, clean := Group(reports, known)

	want := []string{"0655", "0677"}
	if !reflect.DeepEqual(clean, want) {
		t.Fatalf("clean = %v, want %v", clean, want)
	}
}

func TestFilterFields(t *testing.T) {
	reports := []Report{
		report("0600123456", "Ahmed", "refused the package"),
		report("0611999888", "Sara Benali", "kept the driver waiting"),
		report("0622000000", "Karim", "ordered twice and vanished"),
	}
	groups, _ := Group(reports, nil)

	cases := []struct {
		term string
		want []string
	}{
		{"", []string{"0600123456", "0611999888", "0622000000"}},
		{"   ", []string{"0600123456", "0611999888", "0622000000"}},
		{"0611", []string{"0611999888"}},
		{"benali", []string{"0611999888"}},
		{"PACKAGE", []string{"0600123456"}},
		{"vanished", []string{"0622000000"}},
		{"zz", []string{}},
	}
	for _, tc := range cases {
		got := Filter(groups, tc.term)
		phones := make([]string, 0, len(got))
		for _, g := range got {
			phones = append(phones, g.PhoneNumber)
		}
		if len(phones) != len(tc.want) {
			t.Errorf("term %q: got %v, want %v", tc.term, phones, tc.want)
			continue
		}
		for i := range phones {
			if phones[i] != tc.want[i] {
				t.Errorf("term %q: got %v, want %v", tc.term, phones, tc.want)
				break
			}
		}
	}
}

func TestCleanMatch(t *testing.T) {
	clean := []string{"0655443322"}

	if !CleanMatch(clean, "0655") {
		t.Error("expected substring match on clean number")
	}
	if CleanMatch(clean, "zz") {
		t.Error("unexpected match for unrelated term")
	}
	if CleanMatch(clean, "") {
		t.Error("blank term must never signal a clean number")
	}
	if CleanMatch(nil, "0655") {
		t.Error("empty clean set must not match")
	}
}

// Mirrors the canonical end-to-end scenario: two numbers, one with two
// reports, searched by exact phone and by a term matching nothing.
func TestEndToEndScenario(t *testing.T) {
	reports := []Report{
		report("0600", "a", "A"),
		report("0600", "b", "B"),
		report("0611", "c", "C"),
	}

	groups, clean := Group(reports, nil)

	if len(groups) != 2 || groups[0].PhoneNumber != "0600" || groups[0].TotalReports != 2 ||
		groups[1].PhoneNumber != "0611" || groups[1].TotalReports != 1 {
		t.Fatalf("unexpected aggregation: %+v", groups)
	}

	hit := Filter(groups, "0611")
	if len(hit) != 1 || hit[0].PhoneNumber != "0611" {
		t.Fatalf("filter by phone failed: %+v", hit)
	}

	miss := Filter(groups, "zz")
	if len(miss) != 0 {
		t.Fatalf("expected empty result, got %+v", miss)
	}
	if CleanMatch(clean, "zz") {
		t.Fatal("no clean-number signal expected for unmatched term")
	}
}
