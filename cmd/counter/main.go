// Counter is a minimal relm application.
//
// It shows a window with two counters wired so that incrementing the
// first decrements the second, drives it with clicks sent from another
// goroutine and prints the final widget tree.
//
// Usage: counter [-config relm.yaml] [-clicks n]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/elizafairlady/go-relm/config"
	"github.com/elizafairlady/go-relm/logging"
	"github.com/elizafairlady/go-relm/metrics"
	"github.com/elizafairlady/go-relm/relm"
)

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	clicks := flag.Int("clicks", 6, "number of simulated clicks")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(config.Log{Level: cfg.LogLevel(), Format: cfg.Log.Format}, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	opts := []relm.Option{
		relm.WithLogger(logger.With("app", "counter")),
		relm.WithSlowUpdateThreshold(cfg.SlowUpdateThreshold()),
	}
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.Metrics.Namespace)
		reg = prometheus.NewRegistry()
		if err := m.Register(reg); err != nil {
			log.Fatal(err)
		}
		opts = append(opts, relm.WithHooks(m))
	}
	relm.Configure(opts...)

	var root *app
	def := App
	view := def.View
	def.View = func(r *relm.Relm[appMsg], n int) *app {
		root = view(r, n)
		return root
	}
	if err := relm.Run(def, *clicks); err != nil {
		log.Fatal(err)
	}
	fmt.Print(root.dump)

	if reg != nil {
		if err := writeMetrics(reg); err != nil {
			log.Fatal(err)
		}
	}
}

func writeMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("counter: gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return fmt.Errorf("counter: write metrics: %w", err)
		}
	}
	return nil
}
