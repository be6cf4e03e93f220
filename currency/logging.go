package currency

import (
	"context"
	"time"

	"github.com/go-kit/log"

	"money-calculator/domain"
)

// loggingService decorates a Provider with logging
type loggingService struct {
	next   Provider
	logger log.Logger
}

// NewLoggingService returns a new logging Provider
func NewLoggingService(logger log.Logger, p Provider) Provider {
	return &loggingService{
		next:   p,
		logger: logger,
	}
}

func (s *loggingService) Currencies(ctx context.Context) (currencies []domain.Currency, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "currencies",
			"count", len(currencies),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Currencies(ctx)
}

func (s *loggingService) Currency(ctx context.Context, code string) (currency domain.Currency, found bool, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "currency",
			"code", code,
			"found", found,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Currency(ctx, code)
}
