// Command encbench benchmarks three strategies for protecting records at
// rest — plaintext, single-key symmetric, and per-row envelope encryption
// — and prints one measurement per (batch, strategy) pair. It runs with
// no arguments; flags tune batch sizes, the storage backend, and output.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/remind101/encbench/bench"
	"github.com/remind101/encbench/crypto/primitives"
	"github.com/remind101/encbench/logger"
	"github.com/remind101/encbench/metrics"
	"github.com/remind101/encbench/record"
	"github.com/remind101/encbench/report"
	"github.com/remind101/encbench/reporter"
	"github.com/remind101/encbench/store"
	"github.com/remind101/encbench/strategy"
)

func main() {
	app := cli.NewApp()
	app.Name = "encbench"
	app.Usage = "benchmark at-rest encryption strategies"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "batches",
			Usage: "comma-separated batch sizes to run",
			Value: "1000,5000,10000",
		},
		cli.StringFlag{
			Name:  "store",
			Usage: "storage backend: memory, postgres or redis",
			Value: "memory",
		},
		cli.StringFlag{
			Name:   "postgres-url",
			Usage:  "connection string for the postgres backend",
			Value:  "postgres://localhost/encbench?sslmode=disable",
			EnvVar: "DATABASE_URL",
		},
		cli.StringFlag{
			Name:   "redis-addr",
			Usage:  "host:port for the redis backend",
			Value:  "localhost:6379",
			EnvVar: "REDIS_ADDR",
		},
		cli.StringFlag{
			Name:   "kms-key-arn",
			Usage:  "wrap data keys with this KMS CMK instead of a local RSA keypair",
			EnvVar: "KMS_KEY_ARN",
		},
		cli.BoolFlag{
			Name:  "continue-on-error",
			Usage: "mark failing cells and keep going instead of halting",
		},
		cli.StringFlag{
			Name:  "csv",
			Usage: "also write results to this CSV file",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "record source seed",
			Value: 1,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx := initEnv()
	defer metrics.Close()

	batches, err := parseBatches(c.String("batches"))
	if err != nil {
		return err
	}

	wrapper, err := newWrapper(c)
	if err != nil {
		return err
	}

	sym, err := strategy.GenerateSymmetric()
	if err != nil {
		return err
	}
	defer sym.Close()

	runner := &bench.Runner{
		BatchSizes: batches,
		Strategies: []strategy.Strategy{
			strategy.NewPlaintext(),
			sym,
			strategy.NewEnvelope(wrapper),
		},
		Source:          record.NewSynthetic(c.Int64("seed")),
		StoreFor:        storeOpener(c),
		ContinueOnError: c.Bool("continue-on-error"),
	}

	measurements, runErr := runner.Run(ctx)

	if err := report.Table(os.Stdout, measurements); err != nil {
		return err
	}
	if path := c.String("csv"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating csv file")
		}
		defer f.Close()
		if err := report.CSV(f, measurements); err != nil {
			return err
		}
	}

	return runErr
}

// initEnv wires logging, metrics and error reporting from the
// environment.
//
// Env vars:
//   - LOG_LEVEL   - minimum log level (default info)
//   - STATSD_ADDR - dogstatsd agent, metrics are dropped when unset
func initEnv() context.Context {
	l := logger.New(log.New(os.Stderr, "", 0), logger.ParseLevel(os.Getenv("LOG_LEVEL")))
	logger.DefaultLogger = l

	if addr := os.Getenv("STATSD_ADDR"); addr != "" {
		if r, err := metrics.NewDataDogMetricsReporter(addr); err == nil {
			metrics.Reporter = r
			metrics.SetRunTag("app", "encbench")
		} else {
			l.Warn("statsd unavailable, metrics disabled", "err", err)
		}
	}

	ctx := logger.WithLogger(context.Background(), l)
	return reporter.WithReporter(ctx, reporter.NewLogReporter())
}

func newWrapper(c *cli.Context) (primitives.KeyWrapper, error) {
	if arn := c.String("kms-key-arn"); arn != "" {
		return primitives.NewKMSWrapper(session.New(), arn), nil
	}
	return primitives.GenerateRSAWrapper(primitives.DefaultRSABits)
}

func storeOpener(c *cli.Context) func(scope string) (store.Store, error) {
	backend := c.String("store")
	return func(scope string) (store.Store, error) {
		switch backend {
		case "memory":
			return store.NewMemory(), nil
		case "postgres":
			return store.OpenPostgres(c.String("postgres-url"), scope)
		case "redis":
			return store.OpenRedis(c.String("redis-addr"), scope)
		default:
			return nil, errors.Errorf("unknown storage backend %q", backend)
		}
	}
}

func parseBatches(s string) ([]int, error) {
	var batches []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, errors.Errorf("invalid batch size %q", part)
		}
		batches = append(batches, n)
	}
	return batches, nil
}
