package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"spaceshooter/autopilot"
	"spaceshooter/game"
	"spaceshooter/profile"
	"spaceshooter/trace"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (defaults are used when empty)")
	envFile := flag.String("env", ".env", "dotenv file with SHOOTER_* overrides")
	script := flag.String("script", "", "JavaScript autopilot script (built-in script when empty)")
	ticks := flag.Int("ticks", 60*60, "maximum number of ticks to simulate")
	tracePath := flag.String("trace", "", "write a msgpack frame trace to this file")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	verbose := flag.Bool("v", false, "log run events to stderr")
	flag.Parse()

	if err := run(*configPath, *envFile, *script, *ticks, *tracePath, *cpuProfile, *verbose); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, envFile, script string, ticks int, tracePath, cpuProfile string, verbose bool) error {
	config, err := game.LoadConfig(configPath, envFile)
	if err != nil {
		return err
	}

	opts := []game.Option{}
	if verbose {
		opts = append(opts, game.WithLogger(log.New(os.Stderr, "sim: ", log.Ltime)))
	}
	sim, err := game.NewSimulation(config, opts...)
	if err != nil {
		return err
	}

	runner, err := autopilot.Load(script)
	if err != nil {
		return err
	}
	pilot := autopilot.NewPilot(runner)

	if cpuProfile != "" {
		stop, err := profile.StartCPU(cpuProfile)
		if err != nil {
			return err
		}
		defer stop()
	}

	var rec *trace.Recorder
	if tracePath != "" {
		rec, err = trace.Create(tracePath, sim)
		if err != nil {
			return err
		}
		defer rec.Close()
	}

	log.Printf("Running %d ticks at %d ticks/s (seed %d) with GOMAXPROCS=%d", ticks, config.TickRate, sim.Seed(), runtime.GOMAXPROCS(0))

	for i := 0; i < ticks && !sim.GameOver(); i++ {
		if err := pilot.Apply(sim); err != nil {
			return fmt.Errorf("tick %d: %w", sim.Tick(), err)
		}
		sim.Step()
		if rec != nil {
			if err := rec.Record(sim.Frame()); err != nil {
				return err
			}
		}
	}

	stats := sim.Stats()
	out := struct {
		Ticks    uint64        `json:"ticks"`
		GameOver bool          `json:"gameOver"`
		Score    int           `json:"score"`
		Stats    game.RunStats `json:"stats"`
	}{sim.Tick(), sim.GameOver(), stats.Score(), stats}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
