package request_tokens

import (
	"errors"
	"time"

	"trailiva-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestTokenRepository interface {
	Create(token *RequestToken) error
	// FindByToken reads a token without consuming it; (nil, nil) when absent.
	FindByToken(token string, tokenType TokenType) (*RequestToken, error)
	// Claim deletes the matching token and returns it. Of concurrent callers
	// at most one gets the record; the others get (nil, nil).
	Claim(token string, tokenType TokenType) (*RequestToken, error)
	DeleteExpired(now time.Time) (int64, error)
	DeleteByWorkspaceID(workspaceID uuid.UUID) error
}

type GormRequestTokenRepository struct{}

func (r *GormRequestTokenRepository) Create(token *RequestToken) error {
	return storage.GetDb().Create(token).Error
}

func (r *GormRequestTokenRepository) FindByToken(token string, tokenType TokenType) (*RequestToken, error) {
	var found RequestToken

	err := storage.GetDb().
		Where("token = ? AND token_type = ?", token, tokenType).
		First(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &found, nil
}

func (r *GormRequestTokenRepository) Claim(token string, tokenType TokenType) (*RequestToken, error) {
	var claimed []RequestToken

	result := storage.GetDb().
		Clauses(clause.Returning{}).
		Where("token = ? AND token_type = ?", token, tokenType).
		Delete(&claimed)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 || len(claimed) == 0 {
		return nil, nil
	}

	return &claimed[0], nil
}

func (r *GormRequestTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	result := storage.GetDb().Where("expires_at < ?", now).Delete(&RequestToken{})
	return result.RowsAffected, result.Error
}

func (r *GormRequestTokenRepository) DeleteByWorkspaceID(workspaceID uuid.UUID) error {
	return storage.GetDb().Where("workspace_id = ?", workspaceID).Delete(&RequestToken{}).Error
}
