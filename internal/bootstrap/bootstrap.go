package bootstrap

import (
	tea "github.com/charmbracelet/bubbletea"

	exportinadapter "dw/internal/modules/export/adapter/in"
	exportoutadapter "dw/internal/modules/export/adapter/out"
	exportservice "dw/internal/modules/export/service"
	exportusecase "dw/internal/modules/export/usecase"
	reportinadapter "dw/internal/modules/report/adapter/in"
	reportoutadapter "dw/internal/modules/report/adapter/out"
	reportservice "dw/internal/modules/report/service"
	reportusecase "dw/internal/modules/report/usecase"
	trackerinadapter "dw/internal/modules/tracker/adapter/in"
	trackeroutadapter "dw/internal/modules/tracker/adapter/out"
	trackerout "dw/internal/modules/tracker/port/out"
	trackerservice "dw/internal/modules/tracker/service"
	trackerusecase "dw/internal/modules/tracker/usecase"
	"dw/internal/platform/clock"
	"dw/internal/platform/config"
	"dw/internal/platform/id"
	"dw/internal/platform/lockfile"
	uiapp "dw/internal/ui/app"
)

type App struct {
	TrackerCLI trackerinadapter.CLIHandler
	ReportCLI  reportinadapter.CLIHandler
	ExportCLI  exportinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	lock := lockfile.NewFlockManager(cfg.LockPath)
	stateStore := trackeroutadapter.NewFileStateStore(cfg.StatePath)

	var journal trackerout.JournalStore
	if cfg.Journal {
		journal = trackeroutadapter.NewFileJournalStore(cfg.JournalDir)
	}
	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewTrackerService(clk, ids),
		stateStore,
		journal,
		lock,
	)

	projector, err := reportoutadapter.NewSQLiteStatsProjector(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		clk,
		reportoutadapter.NewTrackerLogAdapter(trackerUC),
		projector,
	))

	exportUC := exportusecase.NewInteractor(exportservice.NewExportService(
		exportoutadapter.NewFileManifestStore(cfg.DataDir),
		exportoutadapter.NewGRPCHost(),
	), reportUC)

	return &App{
		TrackerCLI: trackerinadapter.NewCLIHandler(trackerUC),
		ReportCLI:  reportinadapter.NewCLIHandler(reportUC),
		ExportCLI:  exportinadapter.NewCLIHandler(exportUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TrackerCLI, app.ReportCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
