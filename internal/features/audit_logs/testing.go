package audit_logs

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// InMemoryAuditLogRepository backs AuditLogService in tests that run
// without a database.
type InMemoryAuditLogRepository struct {
	mu   sync.Mutex
	logs []AuditLog
}

func NewInMemoryAuditLogRepository() *InMemoryAuditLogRepository {
	return &InMemoryAuditLogRepository{}
}

func (r *InMemoryAuditLogRepository) Create(auditLog *AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, *auditLog)
	return nil
}

func (r *InMemoryAuditLogRepository) Find(query auditLogQuery) ([]*AuditLogDTO, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*AuditLogDTO
	// newest first
	for _, log := range slices.Backward(r.logs) {
		if query.WorkspaceID != nil && (log.WorkspaceID == nil || *log.WorkspaceID != *query.WorkspaceID) {
			continue
		}
		if query.UserID != nil && (log.UserID == nil || *log.UserID != *query.UserID) {
			continue
		}
		if query.BeforeDate != nil && !log.CreatedAt.Before(*query.BeforeDate) {
			continue
		}

		matched = append(matched, &AuditLogDTO{
			ID:          log.ID,
			UserID:      log.UserID,
			WorkspaceID: log.WorkspaceID,
			Message:     log.Message,
			CreatedAt:   log.CreatedAt,
		})
	}

	total := int64(len(matched))
	start := min(query.Offset, len(matched))
	end := min(start+query.Limit, len(matched))

	return matched[start:end], total, nil
}

func (r *InMemoryAuditLogRepository) DeleteByWorkspace(workspaceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = slices.DeleteFunc(r.logs, func(log AuditLog) bool {
		return log.WorkspaceID != nil && *log.WorkspaceID == workspaceID
	})
	return nil
}

// Messages returns every stored message in write order.
func (r *InMemoryAuditLogRepository) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := make([]string, len(r.logs))
	for i, log := range r.logs {
		messages[i] = log.Message
	}
	return messages
}

func NewTestAuditLogService() (*AuditLogService, *InMemoryAuditLogRepository) {
	repository := NewInMemoryAuditLogRepository()
	return NewAuditLogService(repository, slog.New(slog.DiscardHandler)), repository
}
