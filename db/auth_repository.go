package db

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/soufdev/fraudline/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	IsPhoneExist(phone string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	UpdatePassword(password string, email string) error
	ResetPassword(userID, newPassword string) error
	MarkEmailVerified(email string) error
	EditUserProfile(userID uint, userDetails *models.EditProfileResponse) error
	UpsertUserImage(userID uint, filepath string) error
	FindRoleByID(roleID uuid.UUID) (*models.Role, error)
	FindRoleByName(name string) (*models.Role, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	if user.RoleID == uuid.Nil {
		var defaultRole models.Role
		if err := a.DB.Where("name = ?", models.RoleUser).First(&defaultRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				defaultRole = models.Role{
					ID:   uuid.New(),
					Name: models.RoleUser,
				}
				if err := a.DB.Create(&defaultRole).Error; err != nil {
					log.Printf("CreateUser error creating default role: %v", err)
					return nil, err
				}
			} else {
				log.Printf("CreateUser error fetching default role: %v", err)
				return nil, err
			}
		}
		user.RoleID = defaultRole.ID
	}

	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}

	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) IsPhoneExist(phone string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("telephone = ?", phone).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("phone number already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("email = ?", strings.ToLower(email)).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("id = ?", id).First(user).Error
	if err != nil {
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	result := a.DB.Create(blacklist)
	return result.Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count)
	return count > 0
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	result := a.DB.Model(&models.User{}).Where("email = ?", email).Update("hashed_password", password)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) ResetPassword(userID, newPassword string) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("hashed_password", newPassword)
	if result.Error != nil {
		return errors.Wrap(result.Error, "gorm update error")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) MarkEmailVerified(email string) error {
	result := a.DB.Model(&models.User{}).Where("email = ?", email).Update("is_verified", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "gorm update error")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) EditUserProfile(userID uint, userDetails *models.EditProfileResponse) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"fullname":  userDetails.FullName,
		"telephone": userDetails.Phone,
	})
	if result.Error != nil {
		return errors.Wrap(result.Error, "gorm update error")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) UpsertUserImage(userID uint, filepath string) error {
	result := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("thumb_nail_url", filepath)
	if result.Error != nil {
		return errors.Wrap(result.Error, "gorm update error")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) FindRoleByID(roleID uuid.UUID) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("id = ?", roleID).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (a *authRepo) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := a.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
