package audit_logs

import (
	"trailiva-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(auditLog *AuditLog) error
	Find(query auditLogQuery) ([]*AuditLogDTO, int64, error)
	DeleteByWorkspace(workspaceID uuid.UUID) error
}

type GormAuditLogRepository struct{}

func (r *GormAuditLogRepository) Create(auditLog *AuditLog) error {
	return storage.GetDb().Create(auditLog).Error
}

func (r *GormAuditLogRepository) Find(query auditLogQuery) ([]*AuditLogDTO, int64, error) {
	var total int64
	if err := r.filter(storage.GetDb().Model(&AuditLog{}), query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*AuditLogDTO
	err := r.filter(storage.GetDb().Table("audit_logs"), query).
		Select(`audit_logs.id, audit_logs.user_id, audit_logs.workspace_id, audit_logs.message,
			audit_logs.created_at, u.email AS user_email, w.name AS workspace_name`).
		Joins("LEFT JOIN users u ON u.id = audit_logs.user_id").
		Joins("LEFT JOIN workspaces w ON w.id = audit_logs.workspace_id").
		Order("audit_logs.created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Scan(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *GormAuditLogRepository) DeleteByWorkspace(workspaceID uuid.UUID) error {
	return storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Delete(&AuditLog{}).Error
}

func (r *GormAuditLogRepository) filter(db *gorm.DB, query auditLogQuery) *gorm.DB {
	if query.WorkspaceID != nil {
		db = db.Where("audit_logs.workspace_id = ?", *query.WorkspaceID)
	}
	if query.UserID != nil {
		db = db.Where("audit_logs.user_id = ?", *query.UserID)
	}
	if query.BeforeDate != nil {
		db = db.Where("audit_logs.created_at < ?", *query.BeforeDate)
	}

	return db
}
