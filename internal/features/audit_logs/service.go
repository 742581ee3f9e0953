package audit_logs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type AuditLogService struct {
	repository AuditLogRepository
	logger     *slog.Logger
}

func NewAuditLogService(repository AuditLogRepository, logger *slog.Logger) *AuditLogService {
	return &AuditLogService{repository, logger}
}

// WriteAuditLog never fails the calling operation: a write error is logged.
func (s *AuditLogService) WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID) {
	auditLog := &AuditLog{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repository.Create(auditLog); err != nil {
		s.logger.Error("failed to write audit log", "message", message, "error", err)
	}
}

func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	return s.find(auditLogQuery{WorkspaceID: &workspaceID}, request)
}

func (s *AuditLogService) GetUserAuditLogs(
	userID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	return s.find(auditLogQuery{UserID: &userID}, request)
}

func (s *AuditLogService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	if err := s.repository.DeleteByWorkspace(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace audit logs: %w", err)
	}

	return nil
}

func (s *AuditLogService) find(
	query auditLogQuery,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(request.Offset, 0)

	query.BeforeDate = request.BeforeDate
	query.Limit = limit
	query.Offset = offset

	logs, total, err := s.repository.Find(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	return &GetAuditLogsResponse{
		AuditLogs: logs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
