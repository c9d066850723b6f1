package repository

import (
	"pdam-be-svc/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	CountByEmail(email string) (int64, error)
	GetPelangganUsers(offset, limit int) ([]*models.User, error)
	CountPelanggan() (int64, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create persists a new user
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by primary key
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User

	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CountByEmail counts users registered with the given email
func (r *userRepository) CountByEmail(email string) (int64, error) {
	var count int64

	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetPelangganUsers retrieves a page of users with role PELANGGAN
func (r *userRepository) GetPelangganUsers(offset, limit int) ([]*models.User, error) {
	var users []*models.User

	err := r.db.Where("role = ?", models.RolePelanggan).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// CountPelanggan counts users with role PELANGGAN
func (r *userRepository) CountPelanggan() (int64, error) {
	var count int64

	err := r.db.Model(&models.User{}).Where("role = ?", models.RolePelanggan).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
