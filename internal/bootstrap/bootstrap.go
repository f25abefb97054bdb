package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	cataloginadapter "readinglist/internal/modules/catalog/adapter/in"
	catalogoutadapter "readinglist/internal/modules/catalog/adapter/out"
	catalogservice "readinglist/internal/modules/catalog/service"
	catalogusecase "readinglist/internal/modules/catalog/usecase"
	goalinadapter "readinglist/internal/modules/goal/adapter/in"
	goaloutadapter "readinglist/internal/modules/goal/adapter/out"
	goalservice "readinglist/internal/modules/goal/service"
	goalusecase "readinglist/internal/modules/goal/usecase"
	listinadapter "readinglist/internal/modules/readinglist/adapter/in"
	listoutadapter "readinglist/internal/modules/readinglist/adapter/out"
	listservice "readinglist/internal/modules/readinglist/service"
	listusecase "readinglist/internal/modules/readinglist/usecase"
	statsinadapter "readinglist/internal/modules/stats/adapter/in"
	statsservice "readinglist/internal/modules/stats/service"
	statsusecase "readinglist/internal/modules/stats/usecase"
	"readinglist/internal/platform/clock"
	"readinglist/internal/platform/config"
	"readinglist/internal/platform/database"
	"readinglist/internal/platform/logging"
	uiapp "readinglist/internal/ui/app"
)

type App struct {
	CatalogCLI cataloginadapter.CLIHandler
	ListCLI    listinadapter.CLIHandler
	GoalCLI    goalinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler

	Clock clock.Clock
	Log   *zap.Logger
	db    *database.DB
}

// New migrates the database to the latest schema, opens it and wires every
// module. Callers must Close the app.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cfg, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	clk := clock.SystemClock{}

	catalogSvc, err := catalogservice.NewCatalogService(clk, catalogoutadapter.NewSQLCatalogStore(db), db, cfg.CacheSize, log.Named("catalog"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new catalog service: %w", err)
	}
	catalogUC := catalogusecase.NewInteractor(catalogSvc)

	listUC := listusecase.NewInteractor(listservice.NewReadingListService(
		clk,
		listoutadapter.NewSQLEntryStore(db),
		log.Named("readinglist"),
	))

	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(
		clk,
		goaloutadapter.NewSQLGoalStore(db),
		goaloutadapter.NewMarkdownNoteStore(),
		db,
		log.Named("goal"),
	))

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(listUC, goalUC, log.Named("stats")))

	return &App{
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		ListCLI:    listinadapter.NewCLIHandler(listUC),
		GoalCLI:    goalinadapter.NewCLIHandler(goalUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		Clock:      clk,
		Log:        log,
		db:         db,
	}, nil
}

func (a *App) Close() error {
	_ = a.Log.Sync()
	return a.db.Close()
}

// Migrate only brings the schema up to date.
func Migrate(cfg config.Config) error {
	log, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	return database.Migrate(cfg, log)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(uiapp.Services{
		Catalog: app.CatalogCLI,
		List:    app.ListCLI,
		Goals:   app.GoalCLI,
		Stats:   app.StatsCLI,
		Clock:   app.Clock,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
