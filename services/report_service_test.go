package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/soufdev/fraudline/config"
	"github.com/soufdev/fraudline/models"
	"gorm.io/gorm"
)

type fakeReportRepo struct {
	reports []models.Report
	known   []string
	ratings map[string]*models.NumberRating
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{ratings: make(map[string]*models.NumberRating)}
}

func (f *fakeReportRepo) SaveReport(report *models.Report) (*models.Report, error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = models.StatusOpen
	}
	f.reports = append(f.reports, *report)
	return report, nil
}

func (f *fakeReportRepo) GetReportByID(id string) (*models.Report, error) {
	for i := range f.reports {
		if f.reports[i].ID.String() == id {
			r := f.reports[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) GetAllReports() ([]models.Report, error) {
	return f.reports, nil
}

func (f *fakeReportRepo) GetReportsByPhone(phone string) ([]models.Report, error) {
	var out []models.Report
	for _, r := range f.reports {
		if r.PhoneNumber == phone {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateReport(report *models.Report) error {
	for i := range f.reports {
		if f.reports[i].ID == report.ID {
			f.reports[i] = *report
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) DeleteByID(id string) error {
	for i := range f.reports {
		if f.reports[i].ID.String() == id {
			f.reports = append(f.reports[:i], f.reports[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) RegisterKnownNumber(phone string) error {
	for _, p := range f.known {
		if p == phone {
			return nil
		}
	}
	f.known = append(f.known, phone)
	return nil
}

func (f *fakeReportRepo) GetKnownNumbers() ([]string, error) {
	return f.known, nil
}

func (f *fakeReportRepo) GetRating(phone string) (*models.NumberRating, error) {
	if r, ok := f.ratings[phone]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReportRepo) UpsertRating(rating *models.NumberRating) error {
	copied := *rating
	f.ratings[rating.PhoneNumber] = &copied
	return nil
}

func (f *fakeReportRepo) GetRatingsForPhones(phones []string) (map[string]models.NumberRating, error) {
	out := make(map[string]models.NumberRating)
	for _, p := range phones {
		if r, ok := f.ratings[p]; ok {
			out[p] = *r
		}
	}
	return out, nil
}

func (f *fakeReportRepo) CountReports() (int64, error) {
	return int64(len(f.reports)), nil
}

func (f *fakeReportRepo) CountSolved() (int64, error) {
	var n int64
	for _, r := range f.reports {
		if r.Status == models.StatusSolved {
			n++
		}
	}
	return n, nil
}

func (f *fakeReportRepo) CountDistinctNumbers() (int64, error) {
	seen := map[string]bool{}
	for _, r := range f.reports {
		seen[r.PhoneNumber] = true
	}
	return int64(len(seen)), nil
}

func (f *fakeReportRepo) GetRegions() ([]models.Region, error) {
	return nil, nil
}

func newTestReportService(repo *fakeReportRepo) ReportService {
	return NewReportService(repo, &config.Config{})
}

func seedReports(t *testing.T, svc ReportService, phones ...string) {
	t.Helper()
	for _, phone := range phones {
		_, err := svc.CreateReport(1, "tester", &models.CreateReportRequest{
			PhoneNumber: phone,
			Description: "suspicious order",
		}, "")
		if err != nil {
			t.Fatalf("seeding report for %s: %v", phone, err)
		}
	}
}

func TestRateNumberRequiresAuth(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)

	_, err := svc.RateNumber(0, "0600", 4)
	if err == nil {
		t.Fatal("expected error for unauthenticated rating")
	}
	if len(repo.ratings) != 0 {
		t.Fatalf("rejected rating must not change state, got %d ratings", len(repo.ratings))
	}
}

func TestRateNumberValidatesStars(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)

	for _, stars := range []int{0, -1, 6} {
		if _, err := svc.RateNumber(1, "0600", stars); err == nil {
			t.Errorf("stars=%d accepted", stars)
		}
	}
	if len(repo.ratings) != 0 {
		t.Fatal("invalid votes must not be recorded")
	}
}

func TestRateNumberRunningAverage(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)

	if _, err := svc.RateNumber(1, "0600", 5); err != nil {
		t.Fatal(err)
	}
	rating, err := svc.RateNumber(2, "0600", 3)
	if err != nil {
		t.Fatal(err)
	}

	if rating.RatingCount != 2 {
		t.Errorf("RatingCount = %d, want 2", rating.RatingCount)
	}
	if rating.Rating != 4 {
		t.Errorf("Rating = %v, want 4", rating.Rating)
	}
}

func TestListNumbersPipeline(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)
	seedReports(t, svc, "0600", "0600", "0611")

	page, err := svc.ListNumbers("", 1)
	if err != nil {
		t.Fatal(err)
	}

	if page.Total != 2 || len(page.Groups) != 2 {
		t.Fatalf("expected 2 groups, got total=%d len=%d", page.Total, len(page.Groups))
	}
	if page.Groups[0].PhoneNumber != "0600" || page.Groups[0].TotalReports != 2 {
		t.Errorf("most-reported number first, got %+v", page.Groups[0])
	}
	if page.TotalPages != 1 || len(page.Pages) != 1 || page.Pages[0] != 1 {
		t.Errorf("unexpected paging: totalPages=%d pages=%v", page.TotalPages, page.Pages)
	}
	if page.CleanNumber {
		t.Error("clean flag must stay false when results exist")
	}
}

func TestListNumbersSearchAndCleanFlag(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)
	seedReports(t, svc, "0600")

	// A lookup registers the number without filing a report.
	if _, err := svc.GetNumber("0655443322"); err != nil {
		t.Fatal(err)
	}

	hit, err := svc.ListNumbers("0655", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(hit.Groups) != 0 {
		t.Fatalf("expected no groups for clean number, got %d", len(hit.Groups))
	}
	if !hit.CleanNumber {
		t.Error("expected clean-number flag for a registered unreported number")
	}

	miss, err := svc.ListNumbers("does-not-exist", 1)
	if err != nil {
		t.Fatal(err)
	}
	if miss.CleanNumber {
		t.Error("clean flag must not fire for an unknown term")
	}
}

func TestListNumbersAttachesRatings(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)
	seedReports(t, svc, "0600")

	if _, err := svc.RateNumber(1, "0600", 4); err != nil {
		t.Fatal(err)
	}

	page, err := svc.ListNumbers("", 1)
	if err != nil {
		t.Fatal(err)
	}
	if page.Groups[0].Rating != 4 || page.Groups[0].RatingCount != 1 {
		t.Errorf("rating not attached: %+v", page.Groups[0])
	}
}

func TestGetNumberCleanRecord(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)

	detail, err := svc.GetNumber("0655")
	if err != nil {
		t.Fatal(err)
	}
	if !detail.HasNoComplaints || detail.TotalReports != 0 {
		t.Errorf("expected clean record, got %+v", detail)
	}

	found := false
	for _, p := range repo.known {
		if p == "0655" {
			found = true
		}
	}
	if !found {
		t.Error("lookup should register the number as known")
	}
}

func TestUpdateDescriptionOwnership(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)

	report, err := svc.CreateReport(1, "owner", &models.CreateReportRequest{
		PhoneNumber: "0600",
		Description: "original",
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	id := report.ID.String()

	if _, err := svc.UpdateDescription(2, false, id, "hijacked"); err == nil {
		t.Fatal("non-owner edit must be rejected")
	}

	updated, err := svc.UpdateDescription(2, true, id, "admin edit")
	if err != nil {
		t.Fatalf("admin edit rejected: %v", err)
	}
	if updated.Description != "admin edit" {
		t.Errorf("description = %q", updated.Description)
	}

	if _, err := svc.UpdateDescription(1, false, id, "owner edit"); err != nil {
		t.Fatalf("owner edit rejected: %v", err)
	}
}

func TestDeleteReportOwnership(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)

	report, err := svc.CreateReport(1, "owner", &models.CreateReportRequest{
		PhoneNumber: "0600",
		Description: "to delete",
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteReport(2, false, report.ID.String()); err == nil {
		t.Fatal("non-owner delete must be rejected")
	}
	if err := svc.DeleteReport(1, false, report.ID.String()); err != nil {
		t.Fatalf("owner delete rejected: %v", err)
	}
	if len(repo.reports) != 0 {
		t.Errorf("report not removed")
	}
}

func TestImportReportsLegacyShapes(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)

	payload := map[string]interface{}{
		"costumers": []interface{}{
			map[string]interface{}{
				"number": "0600",
				"nom":    "Ahmed",
				"motifs": []interface{}{
					map[string]interface{}{"description": "refused delivery"},
					map[string]interface{}{"description": "no show"},
				},
			},
			map[string]interface{}{
				"phone_number": "0611",
				"description":  "flat row",
			},
			map[string]interface{}{
				"description": "row without a phone, skipped",
			},
		},
	}

	imported, err := svc.ImportReports(9, payload)
	if err != nil {
		t.Fatal(err)
	}
	if imported != 3 {
		t.Fatalf("imported = %d, want 3", imported)
	}
	if len(repo.reports) != 3 {
		t.Fatalf("stored = %d, want 3", len(repo.reports))
	}
	for _, r := range repo.reports {
		if r.UserID != 9 {
			t.Errorf("imported report not attributed to importer: %+v", r)
		}
	}

	if _, err := svc.ImportReports(9, "garbage"); err == nil {
		t.Error("unrecognized payload accepted")
	}
}

func TestUpdateStatusAndStats(t *testing.T) {
	repo := newFakeReportRepo()
	svc := newTestReportService(repo)
	seedReports(t, svc, "0600", "0611")

	id := repo.reports[0].ID.String()
	if _, err := svc.UpdateStatus(id, "bogus"); err == nil {
		t.Fatal("invalid status accepted")
	}
	if _, err := svc.UpdateStatus(id, models.StatusSolved); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalReports != 2 || stats.SolvedReports != 1 || stats.UniqueNumbers != 2 {
		t.Errorf("stats = %+v", stats)
	}
}
