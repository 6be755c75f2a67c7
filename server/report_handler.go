package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/soufdev/fraudline/errors"
	"github.com/soufdev/fraudline/models"
	"github.com/soufdev/fraudline/server/response"
)

// handleListNumbers serves the aggregated phone-number listing with optional
// free-text search and fixed-size paging.
func (s *Server) handleListNumbers() gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("search")
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		numbersPage, svcErr := s.ReportService.ListNumbers(term, page)
		if svcErr != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, svcErr)
			return
		}

		response.JSON(c, "", http.StatusOK, numbersPage, nil)
	}
}

func (s *Server) handleGetNumber() gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.Param("number")

		detail, err := s.ReportService.GetNumber(phone)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, detail, nil)
	}
}

func (s *Server) handleGetAllReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := s.ReportService.ListReports()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"reports": reports}, nil)
	}
}

func (s *Server) handleGetStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.ReportService.Stats()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, stats, nil)
	}
}

func (s *Server) handleGetRegions() gin.HandlerFunc {
	return func(c *gin.Context) {
		regions, err := s.ReportService.Regions()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"regions": regions}, nil)
	}
}

// handleCreateReport accepts a multipart form so the evidence screenshot can
// ride along with the complaint. A failed evidence upload does not sink the
// report.
func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		if !user.IsVerified {
			response.JSON(c, "verify your account before reporting", http.StatusForbidden, nil, errs.New("Forbidden", http.StatusForbidden))
			return
		}

		if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		request := models.CreateReportRequest{
			PhoneNumber: c.PostForm("phone_number"),
			Description: c.PostForm("description"),
			City:        c.PostForm("city"),
			Priority:    c.PostForm("priority"),
		}
		if request.PhoneNumber == "" || request.Description == "" {
			response.JSON(c, "phone_number and description are required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var evidenceURL string
		file, handler, err := c.Request.FormFile("evidence_image")
		if err == nil {
			if err := validateFile(handler); err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			evidenceURL, err = s.MediaService.UploadEvidenceImage(file, handler.Filename)
			if err != nil {
				log.Printf("evidence upload failed: %v", err)
				evidenceURL = ""
			}
		} else if err != http.ErrMissingFile {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		report, svcErr := s.ReportService.CreateReport(user.ID, user.Fullname, &request, evidenceURL)
		if svcErr != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, svcErr)
			return
		}

		response.JSON(c, "report submitted", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleUpdateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.UpdateReportRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		report, err := s.ReportService.UpdateDescription(currentUserID(c), currentUserIsAdmin(c), c.Param("id"), request.Description)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "report updated", http.StatusOK, report, nil)
	}
}

func (s *Server) handleUpdateReportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.UpdateReportStatusRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		report, err := s.ReportService.UpdateStatus(c.Param("id"), request.Status)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "status updated", http.StatusOK, report, nil)
	}
}

// handleImportReports bulk-loads a legacy data export. Admin only.
func (s *Server) handleImportReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUserIsAdmin(c) {
			respondAndAbort(c, "", http.StatusForbidden, nil, errs.New("Forbidden", http.StatusForbidden))
			return
		}

		var payload interface{}
		if err := decode(c, &payload); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		imported, err := s.ReportService.ImportReports(currentUserID(c), payload)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "import complete", http.StatusOK, gin.H{"imported": imported}, nil)
	}
}

func (s *Server) handleDeleteReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.ReportService.DeleteReport(currentUserID(c), currentUserIsAdmin(c), c.Param("id")); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "report deleted", http.StatusOK, nil, nil)
	}
}
