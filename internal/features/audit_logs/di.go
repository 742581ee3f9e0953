package audit_logs

import (
	users_services "trailiva-backend/internal/features/users/services"
	"trailiva-backend/internal/util/logger"
)

var auditLogService = NewAuditLogService(&GormAuditLogRepository{}, logger.GetLogger())

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
}
