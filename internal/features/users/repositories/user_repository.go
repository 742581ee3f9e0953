package users_repositories

import (
	"errors"
	"time"

	users_enums "trailiva-backend/internal/features/users/enums"
	users_models "trailiva-backend/internal/features/users/models"
	"trailiva-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		for _, role := range user.Roles {
			if err := addRole(tx, user.ID, role); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return r.withRoles(&user)
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return r.withRoles(&user)
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}

func (r *UserRepository) SetUserEnabled(userID uuid.UUID, isEnabled bool) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("is_enabled", isEnabled).Error
}

func (r *UserRepository) DeleteUser(userID uuid.UUID) error {
	return storage.GetDb().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&users_models.UserRoleGrant{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).Delete(&users_models.User{}).Error
	})
}

func (r *UserRepository) AddUserRole(userID uuid.UUID, role users_enums.UserRole) error {
	return addRole(storage.GetDb(), userID, role)
}

func (r *UserRepository) withRoles(user *users_models.User) (*users_models.User, error) {
	var grants []users_models.UserRoleGrant

	if err := storage.GetDb().
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&grants).Error; err != nil {
		return nil, err
	}

	user.Roles = make([]users_enums.UserRole, 0, len(grants))
	for _, grant := range grants {
		user.Roles = append(user.Roles, grant.Role)
	}

	return user, nil
}

func addRole(db *gorm.DB, userID uuid.UUID, role users_enums.UserRole) error {
	grant := &users_models.UserRoleGrant{
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(grant).Error
}
