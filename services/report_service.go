package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/soufdev/fraudline/aggregate"
	"github.com/soufdev/fraudline/config"
	"github.com/soufdev/fraudline/db"
	apiError "github.com/soufdev/fraudline/errors"
	"github.com/soufdev/fraudline/models"
	"gorm.io/gorm"
)

// NumbersPage is one page of the aggregated phone-number listing.
type NumbersPage struct {
	Groups      []aggregate.PhoneGroup `json:"groups"`
	Total       int                    `json:"total"`
	Page        int                    `json:"page"`
	TotalPages  int                    `json:"total_pages"`
	Pages       []int                  `json:"pages"`
	CleanNumber bool                   `json:"clean_number"`
}

// NumberDetail is the per-number screen: the group summary plus its rating.
type NumberDetail struct {
	aggregate.PhoneGroup
}

// ReportService interface
type ReportService interface {
	CreateReport(userID uint, reporterName string, request *models.CreateReportRequest, evidenceURL string) (*models.Report, error)
	ListReports() ([]models.Report, error)
	ListNumbers(term string, page int) (*NumbersPage, error)
	GetNumber(phone string) (*NumberDetail, error)
	UpdateDescription(userID uint, isAdmin bool, reportID, description string) (*models.Report, error)
	UpdateStatus(reportID, status string) (*models.Report, error)
	DeleteReport(userID uint, isAdmin bool, reportID string) error
	Stats() (*models.PlatformStats, error)
	Regions() ([]models.Region, error)
	RateNumber(userID uint, phone string, stars int) (*models.NumberRating, error)
	ImportReports(userID uint, payload interface{}) (int, error)
}

// reportService struct
type reportService struct {
	Config     *config.Config
	reportRepo db.ReportRepository
}

// NewReportService instantiate a reportService
func NewReportService(reportRepo db.ReportRepository, conf *config.Config) ReportService {
	return &reportService{
		Config:     conf,
		reportRepo: reportRepo,
	}
}

func (s *reportService) CreateReport(userID uint, reporterName string, request *models.CreateReportRequest, evidenceURL string) (*models.Report, error) {
	if request.PhoneNumber == "" {
		return nil, apiError.New("phone number is required", http.StatusBadRequest)
	}

	report := &models.Report{
		PhoneNumber:      request.PhoneNumber,
		ReporterName:     reporterName,
		Description:      request.Description,
		EvidenceImageURL: evidenceURL,
		City:             request.City,
		Priority:         request.Priority,
		Status:           models.StatusOpen,
		UserID:           userID,
	}

	saved, err := s.reportRepo.SaveReport(report)
	if err != nil {
		log.Printf("CreateReport error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.reportRepo.RegisterKnownNumber(saved.PhoneNumber); err != nil {
		log.Printf("CreateReport: could not register number %s: %v", saved.PhoneNumber, err)
	}

	return saved, nil
}

func (s *reportService) ListReports() ([]models.Report, error) {
	reports, err := s.reportRepo.GetAllReports()
	if err != nil {
		log.Printf("ListReports error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return reports, nil
}

// ListNumbers runs the whole listing pipeline: group all reports by number,
// filter on the search term, page the result and attach ratings. The
// CleanNumber flag is only meaningful when the page is empty.
func (s *reportService) ListNumbers(term string, page int) (*NumbersPage, error) {
	reports, err := s.reportRepo.GetAllReports()
	if err != nil {
		log.Printf("ListNumbers error fetching reports: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	known, err := s.reportRepo.GetKnownNumbers()
	if err != nil {
		log.Printf("ListNumbers error fetching known numbers: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	groups, clean := aggregate.Group(toEngineReports(reports), known)
	filtered := aggregate.Filter(groups, term)

	if page < 1 {
		page = 1
	}
	lo, hi, totalPages := aggregate.Paginate(len(filtered), page)
	pageGroups := filtered[lo:hi]

	if err := s.attachRatings(pageGroups); err != nil {
		return nil, err
	}

	return &NumbersPage{
		Groups:      pageGroups,
		Total:       len(filtered),
		Page:        page,
		TotalPages:  totalPages,
		Pages:       aggregate.PageWindow(page, totalPages),
		CleanNumber: len(filtered) == 0 && aggregate.CleanMatch(clean, term),
	}, nil
}

// GetNumber returns the aggregated view of one phone number and registers it
// as known, so a later search for it can say "clean" instead of "nothing".
func (s *reportService) GetNumber(phone string) (*NumberDetail, error) {
	if phone == "" {
		return nil, apiError.New("phone number is required", http.StatusBadRequest)
	}

	if err := s.reportRepo.RegisterKnownNumber(phone); err != nil {
		log.Printf("GetNumber: could not register number %s: %v", phone, err)
	}

	reports, err := s.reportRepo.GetReportsByPhone(phone)
	if err != nil {
		log.Printf("GetNumber error fetching reports: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	detail := &NumberDetail{}
	if len(reports) == 0 {
		detail.PhoneGroup = aggregate.PhoneGroup{
			PhoneNumber:     phone,
			HasNoComplaints: true,
		}
	} else {
		groups, _ := aggregate.Group(toEngineReports(reports), nil)
		detail.PhoneGroup = groups[0]
	}

	rating, err := s.reportRepo.GetRating(phone)
	if err == nil {
		detail.Rating = rating.Rating
		detail.RatingCount = rating.RatingCount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("GetNumber error fetching rating: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return detail, nil
}

func (s *reportService) UpdateDescription(userID uint, isAdmin bool, reportID, description string) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("UpdateDescription error fetching report: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if !isAdmin && report.UserID != userID {
		return nil, apiError.New("you can only edit your own reports", http.StatusForbidden)
	}

	report.Description = description
	if err := s.reportRepo.UpdateReport(report); err != nil {
		log.Printf("UpdateDescription error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return report, nil
}

func (s *reportService) UpdateStatus(reportID, status string) (*models.Report, error) {
	if status != models.StatusOpen && status != models.StatusSolved {
		return nil, apiError.New("status must be open or solved", http.StatusBadRequest)
	}

	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("UpdateStatus error fetching report: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	report.Status = status
	if err := s.reportRepo.UpdateReport(report); err != nil {
		log.Printf("UpdateStatus error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return report, nil
}

func (s *reportService) DeleteReport(userID uint, isAdmin bool, reportID string) error {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("DeleteReport error fetching report: %v", err)
		return apiError.ErrInternalServerError
	}

	if !isAdmin && report.UserID != userID {
		return apiError.New("you can only delete your own reports", http.StatusForbidden)
	}

	if err := s.reportRepo.DeleteByID(reportID); err != nil {
		log.Printf("DeleteReport error: %v", err)
		return apiError.ErrInternalServerError
	}

	return nil
}

func (s *reportService) Stats() (*models.PlatformStats, error) {
	unique, err := s.reportRepo.CountDistinctNumbers()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	total, err := s.reportRepo.CountReports()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	solved, err := s.reportRepo.CountSolved()
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}

	return &models.PlatformStats{
		UniqueNumbers: unique,
		TotalReports:  total,
		SolvedReports: solved,
	}, nil
}

func (s *reportService) Regions() ([]models.Region, error) {
	regions, err := s.reportRepo.GetRegions()
	if err != nil {
		log.Printf("Regions error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return regions, nil
}

// RateNumber folds one more star vote into the number's running average.
// Votes are anonymous aggregates; rating twice counts twice.
func (s *reportService) RateNumber(userID uint, phone string, stars int) (*models.NumberRating, error) {
	if userID == 0 {
		return nil, apiError.ErrUnauthorized
	}
	if stars < 1 || stars > 5 {
		return nil, apiError.New("stars must be between 1 and 5", http.StatusBadRequest)
	}
	if phone == "" {
		return nil, apiError.New("phone number is required", http.StatusBadRequest)
	}

	rating, err := s.reportRepo.GetRating(phone)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("RateNumber error fetching rating: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		rating = &models.NumberRating{PhoneNumber: phone}
	}

	rating.Rating = (rating.Rating*float64(rating.RatingCount) + float64(stars)) / float64(rating.RatingCount+1)
	rating.RatingCount++

	if err := s.reportRepo.UpsertRating(rating); err != nil {
		log.Printf("RateNumber error saving rating: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.reportRepo.RegisterKnownNumber(phone); err != nil {
		log.Printf("RateNumber: could not register number %s: %v", phone, err)
	}

	return rating, nil
}

// ImportReports ingests a legacy export payload. Both payload generations
// are accepted: flat report rows and customer rows nesting their complaints,
// under any of the known collection wrappers. Rows missing a phone number are
// skipped rather than failing the batch. Returns the number of reports saved.
func (s *reportService) ImportReports(userID uint, payload interface{}) (int, error) {
	rows := aggregate.Rows(payload, aggregate.DefaultKeys)
	if rows == nil {
		return 0, apiError.New("unrecognized payload shape", http.StatusBadRequest)
	}

	imported := 0
	for _, r := range aggregate.FromRows(rows, aggregate.DefaultKeys) {
		if r.PhoneNumber == "" {
			continue
		}
		report := &models.Report{
			PhoneNumber:      r.PhoneNumber,
			ReporterName:     r.ReporterName,
			Description:      r.Description,
			EvidenceImageURL: r.EvidenceImageURL,
			City:             r.City,
			Status:           r.Status,
			UserID:           userID,
		}
		if _, err := s.reportRepo.SaveReport(report); err != nil {
			log.Printf("ImportReports error saving report for %s: %v", r.PhoneNumber, err)
			return imported, apiError.ErrInternalServerError
		}
		if err := s.reportRepo.RegisterKnownNumber(r.PhoneNumber); err != nil {
			log.Printf("ImportReports: could not register number %s: %v", r.PhoneNumber, err)
		}
		imported++
	}

	return imported, nil
}

func (s *reportService) attachRatings(groups []aggregate.PhoneGroup) error {
	if len(groups) == 0 {
		return nil
	}
	phones := make([]string, len(groups))
	for i, g := range groups {
		phones[i] = g.PhoneNumber
	}
	ratings, err := s.reportRepo.GetRatingsForPhones(phones)
	if err != nil {
		log.Printf("error attaching ratings: %v", err)
		return apiError.ErrInternalServerError
	}
	for i := range groups {
		if r, ok := ratings[groups[i].PhoneNumber]; ok {
			groups[i].Rating = r.Rating
			groups[i].RatingCount = r.RatingCount
		}
	}
	return nil
}

func toEngineReports(reports []models.Report) []aggregate.Report {
	out := make([]aggregate.Report, len(reports))
	for i, r := range reports {
		out[i] = aggregate.Report{
			ID:               r.ID.String(),
			PhoneNumber:      r.PhoneNumber,
			ReporterName:     r.ReporterName,
			Description:      r.Description,
			EvidenceImageURL: r.EvidenceImageURL,
			City:             r.City,
			Status:           r.Status,
			UserID:           r.UserID,
			CreatedAt:        r.CreatedAt,
		}
	}
	return out
}
