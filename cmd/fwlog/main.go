/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/carverauto/fwlog/pkg/config"
	"github.com/carverauto/fwlog/pkg/filter"
	"github.com/carverauto/fwlog/pkg/logger"
	"github.com/carverauto/fwlog/pkg/models"
	"github.com/carverauto/fwlog/pkg/output"
	"github.com/carverauto/fwlog/pkg/session"
	"github.com/carverauto/fwlog/pkg/source"
	"github.com/carverauto/fwlog/pkg/table"
)

var (
	errFailedToLoadConfig = errors.New("failed to load config")
	errUnknownColumn      = errors.New("unknown column")
	errPublishNeedsNATS   = errors.New("-publish requires source \"nats\"")
)

type flags struct {
	configPath string
	vendor     string
	minDate    string
	maxDate    string
	address    string
	sortColumn string
	descending bool
	typed      bool
	asJSON     bool
	addresses  bool
	charts     bool
	rows       int
	publish    bool
}

func parseFlags() *flags {
	f := &flags{}

	flag.StringVar(&f.configPath, "config", "", "Path to fwlog config file")
	flag.StringVar(&f.vendor, "vendor", "", "Vendor to report on (dlink, tplink, kaspersky); empty reports all")
	flag.StringVar(&f.minDate, "min", "", "First day of the range ("+models.DateLayout+"), default 01.01.2000")
	flag.StringVar(&f.maxDate, "max", "", "Last day of the range ("+models.DateLayout+"), default today")
	flag.StringVar(&f.address, "ip", filter.NoAddress, "Only show records from this source address")
	flag.StringVar(&f.sortColumn, "sort", string(models.ColID), "Column id to sort the table by")
	flag.BoolVar(&f.descending, "desc", false, "Sort descending")
	flag.BoolVar(&f.typed, "typed", false, "Sort numeric and address columns by value instead of text")
	flag.BoolVar(&f.asJSON, "json", false, "Print reports as JSON")
	flag.BoolVar(&f.addresses, "addresses", false, "List the source addresses available for -ip and exit")
	flag.BoolVar(&f.charts, "charts", true, "Print aggregate charts above the table")
	flag.IntVar(&f.rows, "rows", 50, "Maximum table rows to print, 0 for all")
	flag.BoolVar(&f.publish, "publish", false, "Upload the exports in data_dir to the NATS bucket and exit")
	flag.Parse()

	return f
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	f := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, f.configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	if f.typed {
		cfg.TypedSort = true
	}

	appLogger, err := logger.NewComponentLogger("fwlog", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if f.publish {
		return publish(ctx, cfg, appLogger)
	}

	fetcher, closeFetcher, err := newFetcher(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	vendors, err := selectVendors(cfg, f.vendor)
	if err != nil {
		return err
	}

	opts := []session.Option{
		session.WithLogger(appLogger),
		session.WithVendors(vendors...),
		session.WithParserOptions(cfg.ParserOptions()...),
		session.WithFetchTimeout(time.Duration(cfg.FetchTimeout)),
		session.WithMaxBuckets(cfg.MaxBuckets),
	}

	if cfg.TypedSort {
		opts = append(opts, session.WithTypedSort())
	}

	s := session.New(fetcher, opts...)

	if err := applyFilters(s, f); err != nil {
		return err
	}

	if err := s.Load(ctx); err != nil {
		appLogger.Warn().Err(err).Msg("Some vendor exports could not be loaded")
	}

	return render(os.Stdout, s, f)
}

// loadConfig reads path, or the environment when CONFIG_SOURCE=env. Without
// either, the defaults are used.
func loadConfig(ctx context.Context, path string) (*config.FwlogConfig, error) {
	if path == "" && !strings.EqualFold(os.Getenv("CONFIG_SOURCE"), "env") {
		cfg := config.Default()

		return cfg, cfg.Validate()
	}

	return config.Load(ctx, path, nil)
}

func selectVendors(cfg *config.FwlogConfig, name string) ([]models.Vendor, error) {
	if name == "" {
		return cfg.VendorList()
	}

	v, err := models.ParseVendor(name)
	if err != nil {
		return nil, err
	}

	return []models.Vendor{v}, nil
}

func parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s: %w", value, models.DateLayout, err)
	}

	return day, nil
}

func applyFilters(s *session.Session, f *flags) error {
	if f.minDate != "" {
		day, err := parseDay(f.minDate)
		if err != nil {
			return err
		}

		s.SetMinDate(day)
	}

	if f.maxDate != "" {
		day, err := parseDay(f.maxDate)
		if err != nil {
			return err
		}

		s.SetMaxDate(day)
	}

	s.SetAddress(f.address)

	direction := models.Ascending
	if f.descending {
		direction = models.Descending
	}

	column := models.ColumnID(f.sortColumn)

	for _, v := range s.Vendors() {
		if models.LayoutFor(v).Index(column) < 0 {
			return fmt.Errorf("%w %q for %s", errUnknownColumn, f.sortColumn, v)
		}

		s.SetSort(v, table.State{Column: column, Direction: direction})
	}

	return nil
}

func render(w io.Writer, s *session.Session, f *flags) error {
	for _, v := range s.Vendors() {
		if f.addresses {
			addrs, err := s.Addresses(v)
			if errors.Is(err, session.ErrNotLoaded) {
				continue
			}

			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(w, "# %s\n", output.VendorTitle(v)); err != nil {
				return err
			}

			if err := output.Addresses(w, filter.NoAddress, addrs); err != nil {
				return err
			}

			continue
		}

		rep, err := s.Report(v)
		if errors.Is(err, session.ErrNotLoaded) {
			continue
		}

		if err != nil {
			return err
		}

		if f.asJSON {
			err = output.JSON(w, rep)
		} else {
			err = output.Table(w, rep, output.Options{MaxRows: f.rows, Charts: f.charts})
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func newFetcher(ctx context.Context, cfg *config.FwlogConfig, log logger.Logger) (source.Fetcher, func(), error) {
	switch cfg.Source {
	case config.SourceNATS:
		n, err := natsFetcher(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}

		return n, func() {
			if err := n.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close NATS connection")
			}
		}, nil
	case config.SourceFile:
		files, err := cfg.FileOverrides()
		if err != nil {
			return nil, nil, err
		}

		return source.NewFileFetcher(cfg.DataDir, files, log), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", source.ErrUnknownSource, cfg.Source)
	}
}

func natsFetcher(ctx context.Context, cfg *config.FwlogConfig, log logger.Logger) (*source.NATSFetcher, error) {
	opts := []source.NATSOption{source.WithNATSLogger(log)}
	if cfg.Compress {
		opts = append(opts, source.WithCompression())
	}

	return source.NewNATSFetcher(ctx, cfg.NATSURL, cfg.Bucket, opts...)
}

// publish copies every vendor export found in data_dir into the NATS bucket.
func publish(ctx context.Context, cfg *config.FwlogConfig, log logger.Logger) error {
	if cfg.Source != config.SourceNATS {
		return errPublishNeedsNATS
	}

	files, err := cfg.FileOverrides()
	if err != nil {
		return err
	}

	vendors, err := cfg.VendorList()
	if err != nil {
		return err
	}

	n, err := natsFetcher(ctx, cfg, log)
	if err != nil {
		return err
	}

	defer func() { _ = n.Close() }()

	local := source.NewFileFetcher(cfg.DataDir, files, log)

	var errs []error

	for _, v := range vendors {
		if err := copyExport(ctx, local, n, v); err != nil {
			errs = append(errs, err)

			continue
		}

		log.Info().Str("vendor", v.String()).Str("bucket", cfg.Bucket).Msg("Published export")
	}

	return errors.Join(errs...)
}

func copyExport(ctx context.Context, from source.Fetcher, to source.Publisher, v models.Vendor) error {
	rc, err := from.Fetch(ctx, v)
	if err != nil {
		return err
	}

	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read %s export: %w", v, err)
	}

	return to.Publish(ctx, v, data)
}
