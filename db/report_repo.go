package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/soufdev/fraudline/models"
	"gorm.io/gorm"
)

type ReportRepository interface {
	SaveReport(report *models.Report) (*models.Report, error)
	GetReportByID(id string) (*models.Report, error)
	GetAllReports() ([]models.Report, error)
	GetReportsByPhone(phone string) ([]models.Report, error)
	UpdateReport(report *models.Report) error
	DeleteByID(id string) error
	RegisterKnownNumber(phone string) error
	GetKnownNumbers() ([]string, error)
	GetRating(phone string) (*models.NumberRating, error)
	UpsertRating(rating *models.NumberRating) error
	GetRatingsForPhones(phones []string) (map[string]models.NumberRating, error)
	CountReports() (int64, error)
	CountSolved() (int64, error)
	CountDistinctNumbers() (int64, error)
	GetRegions() ([]models.Region, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) SaveReport(report *models.Report) (*models.Report, error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = models.StatusOpen
	}
	if err := r.DB.Create(report).Error; err != nil {
		return nil, errors.Wrap(err, "failed to save report")
	}
	return report, nil
}

func (r *reportRepo) GetReportByID(id string) (*models.Report, error) {
	var report models.Report
	if err := r.DB.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetAllReports() ([]models.Report, error) {
	var reports []models.Report
	if err := r.DB.Order("created_at ASC").Find(&reports).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch reports")
	}
	return reports, nil
}

func (r *reportRepo) GetReportsByPhone(phone string) ([]models.Report, error) {
	var reports []models.Report
	if err := r.DB.Where("phone_number = ?", phone).Order("created_at ASC").Find(&reports).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch reports by phone")
	}
	return reports, nil
}

func (r *reportRepo) UpdateReport(report *models.Report) error {
	report.UpdatedAt = time.Now()
	return r.DB.Save(report).Error
}

func (r *reportRepo) DeleteByID(id string) error {
	result := r.DB.Where("id = ?", id).Delete(&models.Report{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete report")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reportRepo) RegisterKnownNumber(phone string) error {
	if phone == "" {
		return nil
	}
	known := models.KnownNumber{PhoneNumber: phone}
	return r.DB.FirstOrCreate(&known, models.KnownNumber{PhoneNumber: phone}).Error
}

func (r *reportRepo) GetKnownNumbers() ([]string, error) {
	var phones []string
	if err := r.DB.Model(&models.KnownNumber{}).Order("created_at ASC").Pluck("phone_number", &phones).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch known numbers")
	}
	return phones, nil
}

func (r *reportRepo) GetRating(phone string) (*models.NumberRating, error) {
	var rating models.NumberRating
	if err := r.DB.Where("phone_number = ?", phone).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *reportRepo) UpsertRating(rating *models.NumberRating) error {
	rating.UpdatedAt = time.Now()
	return r.DB.Save(rating).Error
}

func (r *reportRepo) GetRatingsForPhones(phones []string) (map[string]models.NumberRating, error) {
	ratings := make(map[string]models.NumberRating, len(phones))
	if len(phones) == 0 {
		return ratings, nil
	}
	var rows []models.NumberRating
	if err := r.DB.Where("phone_number IN ?", phones).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch ratings")
	}
	for _, row := range rows {
		ratings[row.PhoneNumber] = row
	}
	return ratings, nil
}

func (r *reportRepo) CountReports() (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Report{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "gorm count error")
	}
	return count, nil
}

func (r *reportRepo) CountSolved() (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Report{}).Where("status = ?", models.StatusSolved).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "gorm count error")
	}
	return count, nil
}

func (r *reportRepo) CountDistinctNumbers() (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Report{}).Distinct("phone_number").Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "gorm count error")
	}
	return count, nil
}

func (r *reportRepo) GetRegions() ([]models.Region, error) {
	var regions []models.Region
	if err := r.DB.Order("name ASC").Find(&regions).Error; err != nil {
		return nil, errors.Wrap(err, "failed to fetch regions")
	}
	return regions, nil
}
