package request_tokens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// TokenSweeper periodically removes expired tokens that were never redeemed.
type TokenSweeper struct {
	service  *RequestTokenService
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron
}

func NewTokenSweeper(service *RequestTokenService, schedule string, logger *slog.Logger) *TokenSweeper {
	cronLogger := &slogCronLogger{logger}

	return &TokenSweeper{
		service:  service,
		schedule: schedule,
		logger:   logger,
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}
}

func (s *TokenSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("invalid token sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("Token sweeper started", "schedule", s.schedule)

	return nil
}

// Stop halts scheduling. The returned context is done once a running sweep
// has finished.
func (s *TokenSweeper) Stop() context.Context {
	return s.cron.Stop()
}

func (s *TokenSweeper) sweep() {
	if _, err := s.service.SweepExpiredTokens(); err != nil {
		s.logger.Error("Failed to sweep expired tokens", "error", err)
	}
}

type slogCronLogger struct {
	logger *slog.Logger
}

func (l *slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
