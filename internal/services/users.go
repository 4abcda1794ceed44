package services

import (
	"feedify/internal/models"

	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(db *gorm.DB, email string, name *string) (models.User, error)
	GetUsers(db *gorm.DB) ([]models.User, error)
	GetUserByID(db *gorm.DB, id uint) (models.User, error)
	GetUserByEmail(db *gorm.DB, email string) (models.User, error)
	UpdateUser(db *gorm.DB, id uint, name *string) (models.User, error)
	DeleteUser(db *gorm.DB, id uint) (models.User, error)
}

type UserServiceImpl struct{}

func NewUserService() *UserServiceImpl {
	return &UserServiceImpl{}
}

func (s *UserServiceImpl) CreateUser(db *gorm.DB, email string, name *string) (models.User, error) {
	user := models.User{Email: email, Name: name}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, translate(err, ErrDuplicateEmail, nil, nil)
	}
	return user, nil
}

func (s *UserServiceImpl) GetUsers(db *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID loads the user with their posts attached.
func (s *UserServiceImpl) GetUserByID(db *gorm.DB, id uint) (models.User, error) {
	var user models.User
	err := db.Preload("Posts").First(&user, id).Error
	if err != nil {
		return models.User{}, translate(err, nil, nil, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByEmail(db *gorm.DB, email string) (models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return models.User{}, translate(err, nil, nil, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateUser(db *gorm.DB, id uint, name *string) (models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return models.User{}, translate(err, nil, nil, ErrUserNotFound)
	}
	if err := db.Model(&user).Update("name", name).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes the user and returns the deleted record. A user who
// still owns posts or tasks is protected by the foreign keys.
func (s *UserServiceImpl) DeleteUser(db *gorm.DB, id uint) (models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return models.User{}, translate(err, nil, nil, ErrUserNotFound)
	}
	if err := db.Delete(&user).Error; err != nil {
		return models.User{}, translate(err, nil, ErrUserReferenced, nil)
	}
	return user, nil
}
