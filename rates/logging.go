package rates

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

func (s *loggingService) Rate(ctx context.Context, from domain.Currency, to domain.Currency) (rate domain.ExchangeRate, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "rate",
			"from", from.Code(),
			"to", to.Code(),
			"rate", rate.Rate(),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Rate(ctx, from, to)
}
