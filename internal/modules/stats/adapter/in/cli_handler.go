package in

import (
	"context"

	"readinglist/internal/modules/stats/dto"
	statsin "readinglist/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}
