package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mkovach/crewboard/internal/cli"
	"github.com/mkovach/crewboard/internal/db"
	"github.com/mkovach/crewboard/internal/dispatch"
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/repository"
	"github.com/mkovach/crewboard/internal/server"
	"github.com/mkovach/crewboard/internal/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.crewboard/crewboard.db
	dbPath := os.Getenv("CREWBOARD_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".crewboard", "crewboard.db")
	}

	// Determine display timezone: env var or the machine's local zone.
	loc := time.Local
	if tz := os.Getenv("CREWBOARD_TZ"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("loading timezone %q: %w", tz, err)
		}
		loc = l
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	shiftRepo := repository.NewSQLiteShiftRepo(database, loc)
	workerRepo := repository.NewSQLiteWorkerRepo(database)
	jobRepo := repository.NewSQLiteJobRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// The schedule server owns persistence; the board talks to it over a
	// loopback channel carrying the same frames a remote server would.
	srv := server.New(shiftRepo, jobRepo, uow, loc)
	channel := transport.NewLoopback(srv)
	defer channel.Close()

	dispatcher := dispatch.New(channel, loc)

	app := &cli.App{
		Dispatcher: dispatcher,
		Workers:    workerRepo,
		Jobs:       jobRepo,
		Loc:        loc,
	}

	// Detect interactive terminal for shell-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Seed = func(ctx context.Context) error {
		return seed(ctx, workerRepo, jobRepo, shiftRepo, loc)
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// seed inserts a small roster, two jobs and a handful of shifts around the
// current week so a fresh install has something on the board.
func seed(ctx context.Context, workers repository.WorkerRepo, jobs repository.JobRepo, shifts repository.ShiftRepo, loc *time.Location) error {
	roster := []*domain.Worker{
		{ID: "w-alvarez", Name: "Dana Alvarez", EmployeeType: domain.RoleCrewChief, Certifications: []string{"rigging"}, AvailabilityScore: 90, Available: true},
		{ID: "w-okafor", Name: "Sam Okafor", EmployeeType: domain.RoleForkliftOperator, Certifications: []string{"forklift"}, AvailabilityScore: 75, Available: true},
		{ID: "w-reyes", Name: "Luca Reyes", EmployeeType: domain.RoleStagehand, AvailabilityScore: 60, Available: true},
		{ID: "w-boone", Name: "Terry Boone", EmployeeType: domain.RoleTruckDriver, Certifications: []string{"cdl-a"}, AvailabilityScore: 40, Available: false},
	}
	for _, w := range roster {
		if err := workers.Create(ctx, w); err != nil {
			return fmt.Errorf("seeding worker %s: %w", w.ID, err)
		}
	}

	jobList := []*domain.Job{
		{ID: "j-expo", Name: "Spring Expo Load-In", ClientName: "Harbor Convention Center"},
		{ID: "j-gala", Name: "Gala Strike", ClientName: "Meridian Events"},
	}
	for _, j := range jobList {
		if err := jobs.Create(ctx, j); err != nil {
			return fmt.Errorf("seeding job %s: %w", j.ID, err)
		}
	}

	now := time.Now().In(loc)
	morning := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, loc)
	seeded := []*domain.Shift{
		{
			ID:    "s-expo-setup",
			JobID: "j-expo",
			Start: morning,
			End:   morning.Add(8 * time.Hour),
			RoleRequirements: map[domain.Role]int{
				domain.RoleStagehand: 2,
				domain.RoleCrewChief: 1,
			},
			ClientPONumber: "PO-1182",
		},
		{
			ID:    "s-gala-strike",
			JobID: "j-gala",
			Start: morning.AddDate(0, 0, 2).Add(9 * time.Hour),
			End:   morning.AddDate(0, 0, 2).Add(13 * time.Hour),
			RoleRequirements: map[domain.Role]int{
				domain.RoleStagehand:        3,
				domain.RoleForkliftOperator: 1,
			},
			SpecialInstructions: "Dock 4, hard hats required",
		},
		{
			// No start yet; shows up in the unscheduled tray.
			ID:    "s-gala-hold",
			JobID: "j-gala",
			RoleRequirements: map[domain.Role]int{
				domain.RoleStagehand: 1,
			},
		},
	}
	for _, s := range seeded {
		if err := shifts.Create(ctx, s); err != nil {
			return fmt.Errorf("seeding shift %s: %w", s.ID, err)
		}
	}
	return nil
}
