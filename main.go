package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/projectdiscovery/gologger"

	"project/ip-filter/address"
	"project/ip-filter/config"
	"project/ip-filter/dns"
	"project/ip-filter/filter"
	"project/ip-filter/formatter"
)

// errUnsorted is returned when the pool order cannot back a prefix search.
var errUnsorted = errors.New("pool is not in descending address order")

func main() {
	options := ParseOptions()

	// Errors are reported but the exit status stays 0.
	if err := execute(options); err != nil {
		gologger.Error().Msgf("%s", err)
	}
}

func execute(options *Options) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(options.ConfigFile)
	if err != nil {
		return err
	}
	cfg.Resolve = append(cfg.Resolve, options.Resolve...)
	if options.Nameserver != "" {
		cfg.Nameserver = options.Nameserver
	}
	if options.Concurrency > 0 {
		cfg.ConcurrencyLimit = options.Concurrency
	}
	gologger.Verbose().Msgf("Configuration loaded: %d views, concurrency limit %d", len(cfg.Views), cfg.ConcurrencyLimit)

	input := io.Reader(os.Stdin)
	if options.InputFile != "" {
		f, err := os.Open(options.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input %s: %w", options.InputFile, err)
		}
		defer f.Close()
		input = f
	}

	return run(context.Background(), cfg, input, os.Stdout)
}

// run reads the whole pool, sorts it and prints every configured view.
// Views printed before a failure stay printed.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	// 2. Read the pool
	pool, err := address.ReadPool(in)
	if err != nil {
		return err
	}

	if len(cfg.Resolve) > 0 {
		resolver := dns.NewResolver(cfg.ConcurrencyLimit, cfg.Nameserver)
		lines, err := resolver.Lines(ctx, cfg.Resolve)
		if err != nil {
			return err
		}
		for _, line := range lines {
			pool = append(pool, address.ParseLine(line))
		}
	}
	gologger.Verbose().Msgf("Read %d addresses", len(pool))

	// 3. Sort, largest address first
	if err := address.Sort(pool); err != nil {
		return err
	}

	if hasPrefixView(cfg.Views) {
		if err := verifyOrder(pool); err != nil {
			return err
		}
	}

	// 4. Print the views
	for _, view := range cfg.Views {
		selected, err := selectView(pool, view)
		if err != nil {
			return fmt.Errorf("view %s: %w", view.Name, err)
		}
		gologger.Verbose().Msgf("View %s selected %d addresses", view.Name, len(selected))
		if err := formatter.WritePool(out, selected); err != nil {
			return fmt.Errorf("view %s: failed to write output: %w", view.Name, err)
		}
	}

	return nil
}

func hasPrefixView(views []config.View) bool {
	for _, v := range views {
		if len(v.Prefix) > 0 {
			return true
		}
	}
	return false
}

// verifyOrder asserts the precondition of filter.ByPrefix.
func verifyOrder(pool address.Pool) error {
	sorted, err := address.IsSorted(pool)
	if err != nil {
		return err
	}
	if !sorted {
		return errUnsorted
	}
	gologger.Verbose().Msgf("Pool order verified for %d addresses", len(pool))
	return nil
}

func selectView(pool address.Pool, view config.View) (address.Pool, error) {
	switch {
	case len(view.Prefix) > 0:
		return filter.ByPrefix(pool, view.Prefix...)
	case view.Any != nil:
		return filter.ByAnyOctet(pool, *view.Any), nil
	default:
		return pool, nil
	}
}
