package main

import (
	"flag"
	"log"

	"spaceshooter/autopilot"
	"spaceshooter/frontend"
	"spaceshooter/game"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (defaults are used when empty)")
	envFile := flag.String("env", ".env", "dotenv file with SHOOTER_* overrides")
	script := flag.String("autopilot", "", "JavaScript autopilot script, or \"default\" for the built-in one")
	profileDir := flag.String("profile-dir", "", "capture CPU profiles into this directory when the game stalls")
	flag.Parse()

	config, err := game.LoadConfig(*configPath, *envFile)
	if err != nil {
		log.Fatal(err)
	}

	opts := frontend.Options{
		Config:     config,
		ProfileDir: *profileDir,
	}
	if *script != "" {
		path := *script
		if path == "default" {
			path = ""
		}
		opts.Autopilot, err = autopilot.Load(path)
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := frontend.Run(opts); err != nil {
		log.Fatal(err)
	}
}
