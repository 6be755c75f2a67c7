package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/soufdev/fraudline/aggregate"
	"github.com/soufdev/fraudline/config"
	"github.com/soufdev/fraudline/models"
	"github.com/soufdev/fraudline/services"
)

type stubReportService struct {
	page *services.NumbersPage
}

func (s *stubReportService) CreateReport(userID uint, reporterName string, request *models.CreateReportRequest, evidenceURL string) (*models.Report, error) {
	return &models.Report{PhoneNumber: request.PhoneNumber}, nil
}
func (s *stubReportService) ListReports() ([]models.Report, error) { return nil, nil }
func (s *stubReportService) ListNumbers(term string, page int) (*services.NumbersPage, error) {
	return s.page, nil
}
func (s *stubReportService) GetNumber(phone string) (*services.NumberDetail, error) {
	return &services.NumberDetail{PhoneGroup: aggregate.PhoneGroup{PhoneNumber: phone, HasNoComplaints: true}}, nil
}
func (s *stubReportService) UpdateDescription(userID uint, isAdmin bool, reportID, description string) (*models.Report, error) {
	return nil, nil
}
func (s *stubReportService) UpdateStatus(reportID, status string) (*models.Report, error) {
	return nil, nil
}
func (s *stubReportService) DeleteReport(userID uint, isAdmin bool, reportID string) error {
	return nil
}
func (s *stubReportService) Stats() (*models.PlatformStats, error)  { return &models.PlatformStats{}, nil }
func (s *stubReportService) Regions() ([]models.Region, error)      { return nil, nil }
func (s *stubReportService) RateNumber(userID uint, phone string, stars int) (*models.NumberRating, error) {
	return &models.NumberRating{PhoneNumber: phone, Rating: float64(stars), RatingCount: 1}, nil
}
func (s *stubReportService) ImportReports(userID uint, payload interface{}) (int, error) {
	return 0, nil
}

type stubAuthRepo struct{}

func (stubAuthRepo) CreateUser(user *models.User) (*models.User, error)    { return user, nil }
func (stubAuthRepo) IsEmailExist(email string) error                       { return nil }
func (stubAuthRepo) IsPhoneExist(phone string) error                       { return nil }
func (stubAuthRepo) FindUserByEmail(email string) (*models.User, error)    { return nil, nil }
func (stubAuthRepo) FindUserByID(id uint) (*models.User, error)            { return &models.User{}, nil }
func (stubAuthRepo) UpdateUser(user *models.User) error                    { return nil }
func (stubAuthRepo) AddToBlackList(blacklist *models.Blacklist) error      { return nil }
func (stubAuthRepo) IsTokenInBlacklist(token string) bool                  { return false }
func (stubAuthRepo) UpdatePassword(password string, email string) error    { return nil }
func (stubAuthRepo) ResetPassword(userID, newPassword string) error        { return nil }
func (stubAuthRepo) MarkEmailVerified(email string) error                  { return nil }
func (stubAuthRepo) EditUserProfile(userID uint, d *models.EditProfileResponse) error {
	return nil
}
func (stubAuthRepo) UpsertUserImage(userID uint, filepath string) error { return nil }
func (stubAuthRepo) FindRoleByID(roleID uuid.UUID) (*models.Role, error) {
	return &models.Role{}, nil
}
func (stubAuthRepo) FindRoleByName(name string) (*models.Role, error)   { return &models.Role{}, nil }

func newTestServer(page *services.NumbersPage) *Server {
	os.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)
	return &Server{
		Config:         &config.Config{JWTSecret: "test-secret"},
		AuthRepository: stubAuthRepo{},
		ReportService:  &stubReportService{page: page},
	}
}

func TestListNumbersEnvelope(t *testing.T) {
	page := &services.NumbersPage{
		Groups: []aggregate.PhoneGroup{
			{PhoneNumber: "0600", Names: "Ahmed", TotalReports: 2},
		},
		Total:      1,
		Page:       1,
		TotalPages: 1,
		Pages:      []int{1},
	}
	s := newTestServer(page)
	router := s.setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/numbers?search=0600&page=1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Status int             `json:"status"`
		Errors string          `json:"errors"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if envelope.Status != http.StatusOK || envelope.Errors != "" {
		t.Errorf("envelope = %+v", envelope)
	}

	var data services.NumbersPage
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		t.Fatalf("invalid data payload: %v", err)
	}
	if data.Total != 1 || data.Groups[0].PhoneNumber != "0600" {
		t.Errorf("data = %+v", data)
	}
}

func TestGetNumberCleanRecord(t *testing.T) {
	s := newTestServer(nil)
	router := s.setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/numbers/0655443322", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var envelope struct {
		Data struct {
			PhoneNumber     string `json:"phone_number"`
			HasNoComplaints bool   `json:"has_no_complaints"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Data.PhoneNumber != "0655443322" || !envelope.Data.HasNoComplaints {
		t.Errorf("data = %+v", envelope.Data)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	s := newTestServer(nil)
	router := s.setupRouter()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/user/report"},
		{http.MethodPut, "/api/v1/numbers/0600/rate"},
		{http.MethodDelete, "/api/v1/report/some-id"},
		{http.MethodGet, "/api/v1/me"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}
