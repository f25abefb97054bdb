package usecase

import (
	"context"

	"readinglist/internal/modules/stats/dto"
	statsin "readinglist/internal/modules/stats/port/in"
	"readinglist/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return i.svc.Overview(ctx)
}
