package store

import (
	"context"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error)
	Save(ctx context.Context, user *models.User) error
}

type userStore struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewUserStore(db *gorm.DB, log *utils.Logger) UserStore {
	return &userStore{db: db, log: log.With("store", "UserStore")}
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	return wrap(s.db.WithContext(ctx).Create(user).Error, "create user")
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get user")
	}
	return &user, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrap(err, "get user by email")
	}
	return &user, nil
}

func (s *userStore) EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, except).
		Count(&count).Error; err != nil {
		return false, wrap(err, "check email")
	}
	return count > 0, nil
}

func (s *userStore) Save(ctx context.Context, user *models.User) error {
	return wrap(s.db.WithContext(ctx).Save(user).Error, "save user")
}
