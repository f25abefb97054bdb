package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	goaldto "readinglist/internal/modules/goal/dto"
	goalin "readinglist/internal/modules/goal/port/in"
	listdomain "readinglist/internal/modules/readinglist/domain"
	listdto "readinglist/internal/modules/readinglist/dto"
	listin "readinglist/internal/modules/readinglist/port/in"
	"readinglist/internal/modules/stats/domain"
	"readinglist/internal/modules/stats/dto"
)

const (
	RecentCompletedShown = 5
	TopRatedShown        = 5
	GoalsShown           = 3
)

type StatsService struct {
	list  listin.Usecase
	goals goalin.Usecase
	log   *zap.Logger
}

func NewStatsService(list listin.Usecase, goals goalin.Usecase, log *zap.Logger) *StatsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsService{list: list, goals: goals, log: log.Named("stats")}
}

// Overview loads the reading list, recent completions, top ratings and active
// goals concurrently, then the progress of the first GoalsShown goals. The
// first failure cancels the rest and is returned.
func (s *StatsService) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	var (
		entries  []listdto.EntryOutput
		recent   []listdto.EntryOutput
		topRated []listdto.EntryOutput
		active   []goaldto.GoalOutput
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		entries, err = s.list.MyReadingList(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		recent, err = s.list.RecentlyCompleted(egCtx, RecentCompletedShown)
		return err
	})
	eg.Go(func() error {
		var err error
		topRated, err = s.list.TopRated(egCtx, TopRatedShown)
		return err
	})
	eg.Go(func() error {
		var err error
		active, err = s.goals.ActiveGoals(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		s.log.Debug("overview load failed", zap.Error(err))
		return dto.OverviewOutput{}, err
	}

	shown := active
	if len(shown) > GoalsShown {
		shown = shown[:GoalsShown]
	}
	progress := make([]goaldto.ProgressOutput, len(shown))
	eg, egCtx = errgroup.WithContext(ctx)
	for i, goal := range shown {
		eg.Go(func() error {
			p, err := s.goals.GoalProgress(egCtx, goal.ID)
			if err != nil {
				return err
			}
			progress[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		s.log.Debug("goal progress load failed", zap.Error(err))
		return dto.OverviewOutput{}, err
	}

	summary := domain.Summarize(toEntries(entries), statusNames(), string(listdomain.StatusCompleted), string(listdomain.StatusCurrentlyReading))
	out := dto.OverviewOutput{
		Total:             summary.Total,
		Completed:         summary.Completed,
		Reading:           summary.Reading,
		PagesRead:         summary.PagesRead,
		Rated:             summary.Rated,
		AverageRating:     summary.AverageRating,
		RecentlyCompleted: recent,
		TopRated:          topRated,
		ActiveGoals:       len(active),
		Goals:             progress,
	}
	for _, c := range summary.ByStatus {
		out.ByStatus = append(out.ByStatus, dto.StatusCount{
			Status: c.Status,
			Label:  listdomain.Status(c.Status).Label(),
			Count:  c.Count,
		})
	}
	for _, p := range progress {
		if p.Achieved {
			out.AchievedGoals++
		}
	}
	return out, nil
}

func toEntries(in []listdto.EntryOutput) []domain.Entry {
	out := make([]domain.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, domain.Entry{Status: e.Status, Pages: e.Pages, Rating: e.Rating})
	}
	return out
}

func statusNames() []string {
	out := make([]string, 0, len(listdomain.Statuses))
	for _, s := range listdomain.Statuses {
		out = append(out, string(s))
	}
	return out
}
