package request_tokens

import (
	"sync"

	"trailiva-backend/internal/config"
	audit_logs "trailiva-backend/internal/features/audit_logs"
	"trailiva-backend/internal/features/email"
	tasks_services "trailiva-backend/internal/features/tasks/services"
	users_services "trailiva-backend/internal/features/users/services"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/util/logger"
)

var (
	requestTokenService    *RequestTokenService
	requestTokenController *RequestTokenController
	tokenSweeper           *TokenSweeper
	requestTokensOnce      sync.Once
)

func initRequestTokens() {
	env := config.GetEnv()

	requestTokenService = NewRequestTokenService(
		&GormRequestTokenRepository{},
		users_services.GetUserService(),
		workspaces_services.GetWorkspaceService(),
		workspaces_services.GetMembershipService(),
		tasks_services.GetTaskService(),
		email.GetEmailService(),
		audit_logs.GetAuditLogService(),
		logger.GetLogger(),
		env.TokenTTL,
	)
	requestTokenController = NewRequestTokenController(requestTokenService)
	tokenSweeper = NewTokenSweeper(requestTokenService, env.TokenSweepSchedule, logger.GetLogger())
}

func GetRequestTokenService() *RequestTokenService {
	requestTokensOnce.Do(initRequestTokens)
	return requestTokenService
}

func GetRequestTokenController() *RequestTokenController {
	requestTokensOnce.Do(initRequestTokens)
	return requestTokenController
}

func GetTokenSweeper() *TokenSweeper {
	requestTokensOnce.Do(initRequestTokens)
	return tokenSweeper
}

func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(GetRequestTokenService())
	users_services.GetUserService().SetVerificationIssuer(GetRequestTokenService())
}
