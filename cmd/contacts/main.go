package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/phbpx/addressbook/filestore"
	"github.com/phbpx/addressbook/handler"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run("contacts", os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(serviceName string, in io.Reader, out io.Writer) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		Args conf.Args
		Book struct {
			File string `conf:"default:addressbook.pkl"`
		}
		Log struct {
			Level  string `conf:"default:warn"`
			Output string `conf:"default:stderr"`
		}
		Jaeger struct {
			ReporterURI string
			ServiceName string  `conf:"default:contacts"`
			Probability float64 `conf:"default:1"`
		}
	}{}

	help, err := conf.Parse("CONTACTS", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Fprintln(out, help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	log, err := newLog(serviceName, cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	// =========================================================================
	// Start Tracing Support

	if cfg.Jaeger.ReporterURI != "" {
		log.Infow("startup", "status", "initializing OT/Jaeger tracing support", "uri", cfg.Jaeger.ReporterURI)

		traceProvider, err := startTracing(
			cfg.Jaeger.ServiceName,
			cfg.Jaeger.ReporterURI,
			cfg.Jaeger.Probability,
		)
		if err != nil {
			return fmt.Errorf("starting tracing: %w", err)
		}
		defer traceProvider.Shutdown(context.Background())
	}

	// =========================================================================
	// Load Address Book

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("startup", "status", "loading address book", "file", cfg.Book.File)

	storage := filestore.NewBookStorage(filestore.Config{Path: cfg.Book.File})
	book, err := storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading address book: %w", err)
	}

	// =========================================================================
	// Run Commands

	otelLog := otelzap.New(log.Desugar(), otelzap.WithStackTrace(true)).Sugar()
	contacts := handler.NewContactHandler(book, otelLog, time.Now)
	dispatcher := handler.NewDispatcher(contacts, otelLog, out)

	if len(cfg.Args) > 0 {
		dispatcher.Execute(ctx, cfg.Args)
	} else if err := prompt(ctx, dispatcher, in, out); err != nil {
		log.Errorw("shutdown", "status", "reading commands", "error", err)
	}

	// =========================================================================
	// Save Address Book

	log.Infow("shutdown", "status", "saving address book", "file", cfg.Book.File, "contacts", book.Len())

	if err := storage.Save(context.Background(), book); err != nil {
		return fmt.Errorf("saving address book: %w", err)
	}
	return nil
}

// prompt reads command lines from in until a command closes the session, in
// is exhausted or ctx is cancelled.
func prompt(ctx context.Context, d *handler.Dispatcher, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Welcome to the assistant bot!")

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, "Enter a command: ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			if d.Dispatch(ctx, line) {
				return nil
			}
		}
	}
}

func newLog(serviceName, level, output string) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{output}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

func startTracing(serviceName, reporterURL string, probability float64) (*tracesdk.TracerProvider, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(reporterURL)))
	if err != nil {
		return nil, fmt.Errorf("creating new exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(probability))),
		tracesdk.WithBatcher(exp,
			tracesdk.WithMaxExportBatchSize(tracesdk.DefaultMaxExportBatchSize),
			tracesdk.WithBatchTimeout(tracesdk.DefaultScheduleDelay*time.Millisecond),
		),
		// Record information about this application in a Resource.
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("exporter", "jaeger"),
		)),
	)

	otel.SetTracerProvider(tp)
	return tp, nil
}
