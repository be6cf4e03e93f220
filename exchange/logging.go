package exchange

import (
	"context"
	"time"

	"github.com/go-kit/log"

	"money-calculator/domain"
)

// loggingService decorates an exchange.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Convert(ctx context.Context, money domain.Money, target domain.Currency) (result domain.Money, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "convert",
			"amount", money.Amount().StringFixed(2),
			"from", money.Currency().Code(),
			"to", target.Code(),
			"converted_amount", result.Amount().StringFixed(2),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, money, target)
}
