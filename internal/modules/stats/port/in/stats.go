package in

import (
	"context"

	"readinglist/internal/modules/stats/dto"
)

type Usecase interface {
	Overview(ctx context.Context) (dto.OverviewOutput, error)
}
