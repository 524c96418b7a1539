package services

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

type DashboardService struct {
	ledger   domain.LedgerRepository
	calendar Calendar
	logger   *log.Logger
}

func NewDashboardService(ledger domain.LedgerRepository, calendar Calendar, logger *log.Logger) *DashboardService {
	return &DashboardService{
		ledger:   ledger,
		calendar: calendar,
		logger:   logger,
	}
}

// GetDashboard combines today's counters with the streak. A failing store read
// for today's row is an error; anything going wrong on the streak side only
// zeroes the streak so the counters still render.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string, today time.Time) (*domain.Dashboard, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}
	today = domain.StartOfDay(today)

	agg, err := getAggregate(ctx, s.ledger, userID, today)
	if err != nil {
		return nil, err
	}

	dash := &domain.Dashboard{
		Date:     domain.DayKey(today),
		Water:    agg.WaterIntake,
		Calories: agg.CaloriesConsumed,
	}

	dates, err := s.ledger.ListLoggedDates(ctx, userID)
	if err != nil {
		s.logger.Warn("listing logged dates failed, reporting streak 0", "user_id", userID, "err", err)
		return dash, nil
	}

	summary, err := domain.SummarizeStreak(dates, today)
	if err != nil {
		s.logger.Warn("streak computation failed, reporting streak 0", "user_id", userID, "err", err)
		return dash, nil
	}

	dash.Streak = summary.Current
	dash.LongestStreak = summary.Longest
	return dash, nil
}

func (s *DashboardService) GetTodayDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	return s.GetDashboard(ctx, userID, s.calendar.Today())
}
