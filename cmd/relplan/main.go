package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/relplan/internal/cli"
	"github.com/alexanderramin/relplan/internal/config"
	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	v := config.New()
	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	root := cli.NewRootCmd(app)
	flags := root.PersistentFlags()
	flags.String(config.KeyDB, "", "Database path (default ~/.relplan/relplan.db)")
	flags.String(config.KeyConfigFile, "", "Config file (default ./.relplan.yaml or ~/.relplan.yaml)")
	flags.Bool("log-use-cases", false, "Log every use case to stderr")
	for key, flag := range map[string]string{
		config.KeyDB:          config.KeyDB,
		config.KeyConfigFile:  config.KeyConfigFile,
		config.KeyLogUseCases: "log-use-cases",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		if cfg.JSON() && !cmd.Flags().Changed("json") {
			if err := cmd.Flags().Set("json", "true"); err != nil {
				return err
			}
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		wire(app, database, cfg)
		return nil
	}

	return root.Execute()
}

// wire builds the services over database.
func wire(app *cli.App, database *sql.DB, cfg config.Config) {
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	repos := service.NewSQLiteRepos(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app.Import = service.NewImportService(repos, uow, observers...)
	app.Releases = service.NewReleaseService(repos, observers...)
	app.Analysis = service.NewAnalysisService(repos, observers...)
	app.Tickets = service.NewTicketService(repos, observers...)
	app.Team = service.NewTeamService(repos, observers...)
	app.Holidays = service.NewHolidayService(repos, observers...)
	app.JSON = cfg.JSON()
}
