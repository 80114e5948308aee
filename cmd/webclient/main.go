// Command webclient is a small curl-like HTTP client.
//
// Usage:
//
//	webclient [flags] <URL>
//
// Flags may appear before or after the URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/gh0stintheshe11/Web-Client/application/cli"
	"github.com/gh0stintheshe11/Web-Client/application/config"
	"github.com/gh0stintheshe11/Web-Client/application/dispatch"
	"github.com/gh0stintheshe11/Web-Client/application/schema"
	"github.com/gh0stintheshe11/Web-Client/domain/entities"
	domainErrors "github.com/gh0stintheshe11/Web-Client/domain/errors"
	"github.com/gh0stintheshe11/Web-Client/infrastructure/httpclient"
	"github.com/gh0stintheshe11/Web-Client/log"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitFatal   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// optionalString is a string flag that records whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

type options struct {
	url          string
	method       string
	configPath   string
	data         optionalString
	json         optionalString
	verbose      bool
	configSchema bool
}

// parseArgs parses flags and the single positional URL. Flags and the URL
// may be interleaved.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("webclient", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.method, "X", entities.MethodGet, "HTTP method (GET or POST)")
	fs.StringVar(&opts.method, "request", entities.MethodGet, "HTTP method (GET or POST)") // Alias
	fs.Var(&opts.data, "d", "data to send in a POST request (form data: key1=value1&key2=value2)")
	fs.Var(&opts.data, "data", "data to send in a POST request") // Alias
	fs.Var(&opts.json, "json", "JSON data for a POST request (sets the method to POST)")
	fs.StringVar(&opts.configPath, "config", "", "settings file (default $XDG_CONFIG_HOME/webclient/config.yaml)")
	fs.BoolVar(&opts.verbose, "v", false, "log request details to stderr")
	fs.BoolVar(&opts.verbose, "verbose", false, "log request details to stderr") // Alias
	fs.BoolVar(&opts.configSchema, "config-schema", false, "print the settings JSON schema and exit")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: webclient [flags] <URL>\n")
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if opts.configSchema {
		return opts, nil
	}
	if len(positional) != 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected exactly one URL, got %d", len(positional))
	}
	opts.url = positional[0]
	return opts, nil
}

func (o *options) requestSpec() entities.RequestSpec {
	reqOpts := []entities.RequestOption{entities.WithMethod(o.method)}
	if o.data.set {
		reqOpts = append(reqOpts, entities.WithFormData(o.data.value))
	}
	if o.json.set {
		reqOpts = append(reqOpts, entities.WithJSONData(o.json.value))
	}
	return entities.NewRequestSpec(o.url, reqOpts...)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.configSchema {
		data, err := schema.SettingsSchema()
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		_, _ = fmt.Fprintln(stdout, string(data))
		return exitOK
	}

	settings, err := config.Load(opts.configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return exitFailure
	}
	if opts.verbose {
		settings.LogLevel = "debug"
	}

	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return exitFailure
	}
	logger := slog.New(log.NewHandler(log.WithLevel(level), log.WithWriter(stderr))).
		With("request_id", uuid.NewString())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := httpclient.New(httpclient.FromSettings(settings)...)
	runner := cli.NewRunner(stdout,
		dispatch.New(client, dispatch.WithLogger(logger)),
		cli.WithLogger(logger))

	logger.DebugContext(ctx, "starting", "settings", settings)
	if err := runner.Run(ctx, opts.requestSpec()); err != nil {
		var fatal *domainErrors.FatalInputError
		if errors.As(err, &fatal) {
			_, _ = fmt.Fprintln(stderr, err)
			return exitFatal
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}
