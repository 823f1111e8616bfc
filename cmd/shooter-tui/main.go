package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"spaceshooter/autopilot"
	"spaceshooter/game"
	"spaceshooter/tui"
)

const (
	logDir      = "logs"
	logFileName = "shooter-tui.log"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (defaults are used when empty)")
	envFile := flag.String("env", ".env", "dotenv file with SHOOTER_* overrides")
	script := flag.String("autopilot", "", "JavaScript autopilot script, or \"default\" for the built-in one")
	hold := flag.Duration("hold", tui.DefaultHoldWindow, "how long a key counts as held after its last repeat")
	debug := flag.Bool("debug", false, "write run events to "+filepath.Join(logDir, logFileName))
	flag.Parse()

	logFile, err := setupLogging(*debug, logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	stats, err := run(*configPath, *envFile, *script, *hold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	// The screen is closed by now, so this lands on the normal terminal
	fmt.Println(stats)
}

// setupLogging sends the standard logger to a file under dir when debug is
// set and discards it otherwise, since the terminal belongs to the screen
func setupLogging(debug bool, dir string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return f, nil
}

// run plays until the user quits and returns the final stats once the
// screen has been restored
func run(configPath, envFile, script string, hold time.Duration) (game.RunStats, error) {
	config, err := game.LoadConfig(configPath, envFile)
	if err != nil {
		return game.RunStats{}, err
	}
	sim, err := game.NewSimulation(config, game.WithLogger(log.Default()))
	if err != nil {
		return game.RunStats{}, err
	}

	var pilot *autopilot.Pilot
	if script != "" {
		path := script
		if path == "default" {
			path = ""
		}
		runner, err := autopilot.Load(path)
		if err != nil {
			return game.RunStats{}, err
		}
		pilot = autopilot.NewPilot(runner)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return game.RunStats{}, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return game.RunStats{}, fmt.Errorf("failed to initialize screen: %w", err)
	}
	if err := play(screen, sim, pilot, hold); err != nil {
		return game.RunStats{}, err
	}
	return sim.Stats(), nil
}

// play runs the terminal app and always finalizes the screen before
// returning, even on panic
func play(screen tcell.Screen, sim *game.Simulation, pilot *autopilot.Pilot, hold time.Duration) error {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Printf("panic: %v", r)
			panic(r)
		}
		screen.Fini()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := tui.NewApp(screen, sim, pilot, log.Default())
	app.SetHoldWindow(hold)
	return app.Run(ctx)
}
