package system_healthcheck

import (
	"context"
	"errors"
	"time"
)

const pingTimeout = 2 * time.Second

var ErrDatabaseUnavailable = errors.New("database is unavailable")

type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

type HealthcheckService struct {
	pinger DatabasePinger
}

func NewHealthcheckService(pinger DatabasePinger) *HealthcheckService {
	return &HealthcheckService{pinger}
}

func (s *HealthcheckService) IsHealthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.pinger.PingContext(ctx); err != nil {
		return errors.Join(ErrDatabaseUnavailable, err)
	}

	return nil
}
