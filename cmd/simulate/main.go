package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/championship-simulator/internal/app"
	"github.com/riskibarqy/championship-simulator/internal/config"
	"github.com/riskibarqy/championship-simulator/internal/interfaces/cli"
	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"github.com/riskibarqy/championship-simulator/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	seed := flag.Uint64("seed", cfg.SimSeed, "random seed, 0 derives one from the clock")
	startRound := flag.Int("round", cfg.SimStartRound, "round to start simulating from, 0 means the first round")
	teamsPath := flag.String("teams", cfg.DataTeamsPath, "teams file (json or yaml)")
	fixturesPath := flag.String("fixtures", cfg.DataFixturesPath, "fixtures file (json or yaml)")
	quiet := flag.Bool("quiet", false, "print only the final table")
	flag.Parse()

	cfg.SimSeed = *seed
	cfg.SimStartRound = *startRound
	cfg.DataTeamsPath = *teamsPath
	cfg.DataFixturesPath = *fixturesPath

	logger := logging.NewConsole(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout, *quiet); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, out io.Writer, quiet bool) error {
	championship, _, err := app.NewChampionship(ctx, cfg, logger)
	if err != nil {
		return err
	}

	err = championship.SimulateSeason(ctx, func(outcome usecase.RoundOutcome) error {
		if quiet {
			return nil
		}
		if err := cli.WriteOutcome(out, outcome); err != nil {
			return err
		}
		_, err := io.WriteString(out, "\n")
		return err
	})
	if err != nil {
		return err
	}

	final, err := championship.Standings(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Final table\n%s", cli.RenderStandings(final))
	return err
}
