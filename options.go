package main

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	envutil "github.com/projectdiscovery/utils/env"
)

const version = "v0.1.0"

var (
	ConfigFileEnv = envutil.GetEnvOrDefault("IP_FILTER_CONFIG", "")
	NameserverEnv = envutil.GetEnvOrDefault("IP_FILTER_NAMESERVER", "")
)

// Options contains the command line options of ip-filter.
type Options struct {
	ConfigFile  string
	InputFile   string
	Resolve     goflags.StringSlice
	Nameserver  string
	Concurrency int

	Verbose bool
	Silent  bool
	NoColor bool
	Version bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`ip-filter sorts IPv4 addresses read from stdin in descending order and prints filtered views of them`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&options.InputFile, "input", "i", "", "read addresses from file instead of stdin"),
		flagSet.StringSliceVarP(&options.Resolve, "resolve", "r", nil, "add the A records of the given domains to the pool (comma separated)", goflags.CommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", ConfigFileEnv, "yaml file describing the printed views"),
		flagSet.StringVarP(&options.Nameserver, "nameserver", "ns", NameserverEnv, "nameserver (host:port) used with -resolve"),
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", 0, "number of concurrent DNS lookups"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only the printed views"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	options.configureOutput()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
		os.Exit(0)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}
