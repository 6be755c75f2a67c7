package server

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	errs "github.com/soufdev/fraudline/errors"
	"github.com/soufdev/fraudline/models"
	"github.com/soufdev/fraudline/server/response"
)

// Define allowed MIME types and max file size
const (
	MaxFileSize      = 5 * 1024 * 1024 // 5 MB
	AllowedMimeTypes = "image/jpeg,image/png,image/gif"
)

// validateFile checks the file type and size
func validateFile(file *multipart.FileHeader) error {
	if file.Size > MaxFileSize {
		return fmt.Errorf("file size exceeds limit of %d bytes", MaxFileSize)
	}

	mimeType := file.Header.Get("Content-Type")
	if !isValidMimeType(mimeType) {
		return fmt.Errorf("invalid file type: %s", mimeType)
	}

	return nil
}

// isValidMimeType checks if the MIME type is allowed
func isValidMimeType(mimeType string) bool {
	allowedTypes := strings.Split(AllowedMimeTypes, ",")
	for _, allowedType := range allowedTypes {
		if mimeType == allowedType {
			return true
		}
	}
	return false
}

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		var user models.User
		user.Fullname = c.PostForm("fullname")
		user.Telephone = c.PostForm("telephone")
		user.Email = c.PostForm("email")
		user.Password = c.PostForm("password")

		validate := validator.New()
		if err := validate.Struct(user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		// Optional avatar, uploaded before the account exists so the URL can
		// be stored with the new record.
		file, handler, err := c.Request.FormFile("profile_image")
		if err == nil {
			if err := validateFile(handler); err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			filePath, uploadErr := s.MediaService.UploadProfileImage(0, file, handler.Filename)
			if uploadErr != nil {
				response.JSON(c, "", http.StatusInternalServerError, nil, uploadErr)
				return
			}
			user.ThumbNailURL = filePath
		} else if err != http.ErrMissingFile {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		userResponse, err := s.AuthService.SignupUser(&user)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "Signup successful, check your email for verification", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}

		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, exists := c.Get("access_token")
		if !exists {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		blacklist := &models.Blacklist{
			Email: user.Email,
			Token: accessToken.(string),
		}
		blacklist.CreatedAt = time.Now()

		if err := s.AuthRepository.AddToBlackList(blacklist); err != nil {
			log.Printf("error blacklisting token: %v", err)
			response.JSON(c, "logout failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCheckEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.EmailRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		exists, err := s.AuthService.CheckEmailExists(request.Email)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"exists": exists}, nil)
	}
}

func (s *Server) handleCheckVerification() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.EmailRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		verified, err := s.AuthService.CheckVerification(request.Email)
		if err != nil {
			response.JSON(c, "", http.StatusNotFound, nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"verified": verified}, nil)
	}
}

func (s *Server) handleSendVerificationEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.EmailRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		if err := s.AuthService.SendVerificationEmail(request.Email); err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}

		response.JSON(c, "verification email sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleVerifyEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if token == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("missing token", http.StatusBadRequest))
			return
		}

		if err := s.AuthService.VerifyEmail(token); err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		response.JSON(c, "email verified", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		user, err := s.AuthService.GetUserProfile(userID)
		if err != nil {
			response.JSON(c, "", http.StatusNotFound, nil, err)
			return
		}

		roleName := ""
		if user.Role.Name != "" {
			roleName = user.Role.Name
		} else if role, err := s.AuthRepository.FindRoleByID(user.RoleID); err == nil {
			roleName = role.Name
		}

		response.JSON(c, "", http.StatusOK, models.UserResponse{
			ID:           user.ID,
			Fullname:     user.Fullname,
			Email:        user.Email,
			Telephone:    user.Telephone,
			IsVerified:   user.IsVerified,
			ThumbNailURL: user.ThumbNailURL,
			RoleName:     roleName,
		}, nil)
	}
}

func (s *Server) handleEditUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var userDetails models.EditProfileResponse
		if err := decode(c, &userDetails); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		if err := s.AuthService.EditUserProfile(userID, &userDetails); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "profile updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUploadProfileImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		file, fileHeader, err := c.Request.FormFile("profile_image")
		if err != nil {
			response.JSON(c, "missing or invalid file", http.StatusBadRequest, nil, err)
			return
		}

		if err := validateFile(fileHeader); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		filepath, err := s.MediaService.UploadProfileImage(userID, file, fileHeader.Filename)
		if err != nil {
			response.JSON(c, "failed to upload file", http.StatusInternalServerError, nil, err)
			return
		}

		if err := s.AuthRepository.UpsertUserImage(userID, filepath); err != nil {
			response.JSON(c, "failed to update user profile", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "profile image updated", http.StatusOK, gin.H{"url": filepath}, nil)
	}
}
