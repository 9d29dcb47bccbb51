package config

import (
	"flag"
	"os"

	"github.com/moviehub-app/moviehub/internal/flagx"
)

// parseFlags overlays selected Config fields with command-line flags.
//
// Supported flags:
//
//	-e string   endpoint of the hosted identity/database service
//	-p string   project id
//	-d string   data directory for the local store
//
// Only arguments handled here are parsed, via flagx.FilterArgs, so flags
// belonging to other components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-p", "-d"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&cfg.Endpoint, "e", cfg.Endpoint, "endpoint of the hosted backend service")
	fs.StringVar(&cfg.ProjectID, "p", cfg.ProjectID, "project id")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for local storage")
	_ = fs.Parse(args)
}

// configFileFlag extracts the config file path from the -c/-config flags,
// if given.
func configFileFlag() string {
	var config string

	args := flagx.FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("configfile", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
