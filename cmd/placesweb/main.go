// Copyright 2026 The Places Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command placesweb builds and inspects the places web shell.
//
// Usage:
//
//	placesweb build   [-config file] [-out dir]
//	placesweb routes  [-config file]
//	placesweb resolve [-config file] -path /place/42
//	placesweb render  [-config file] -path /catalog [-out dir] [-banner] [-trace]
//	placesweb config  [-config file] [-format yaml|json|toml] [-key maps.lang]
//
// Settings are read from the config file (placesweb.yaml when present),
// PLACESWEB_* environment variables and GEOCODER_API_KEY.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/placesapp/placesweb/app"
	"github.com/placesapp/placesweb/config"
	"github.com/placesapp/placesweb/config/codec"
	"github.com/placesapp/placesweb/logging"
	"github.com/placesapp/placesweb/metrics"
	"github.com/placesapp/placesweb/places"
	"github.com/placesapp/placesweb/router"
	"github.com/placesapp/placesweb/shell"
	"github.com/placesapp/placesweb/tracing"
)

const defaultConfigFile = "placesweb.yaml"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// command is one placesweb subcommand.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = []command{
	{"build", "render index.html and its precompressed siblings", runBuild},
	{"routes", "print the route table in match order", runRoutes},
	{"resolve", "show which route a path matches", runResolve},
	{"render", "boot the app at a path and print the mounted document", runRender},
	{"config", "print the effective settings", runConfig},
}

// environment is what every command gets after settings are loaded.
type environment struct {
	stdout   io.Writer
	stderr   io.Writer
	settings *app.Settings
	cfg      *config.Config
	logger   *logging.Logger
	metrics  *metrics.Recorder
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		_, _ = fmt.Fprintf(stderr, "placesweb: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	fs := flag.NewFlagSet("placesweb "+cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "settings file (yaml, json, toml or .env)")
	rest, err := splitGlobal(fs, args[1:])
	if err != nil {
		return 2
	}

	env, err := load(ctx, *configFile, stdout, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "placesweb: %v\n", err)
		return 1
	}
	defer func() { _ = env.logger.Shutdown(ctx) }()

	if err = cmd.run(ctx, env, rest); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			return 2
		}
		if !app.IsRouterNotReady(err) {
			// the app has already logged the rejected boot
			env.logger.LogError(err, cmd.name+" failed")
		}
		return 1
	}
	return 0
}

// splitGlobal parses the leading -config flag and returns the remaining
// command arguments.
func splitGlobal(fs *flag.FlagSet, args []string) ([]string, error) {
	var global, rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-config" || a == "--config":
			global = append(global, a)
			if i+1 < len(args) {
				global = append(global, args[i+1])
				i++
			}
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			global = append(global, a)
		default:
			rest = append(rest, a)
		}
	}
	if err := fs.Parse(global); err != nil {
		return nil, err
	}
	return rest, nil
}

func load(ctx context.Context, configFile string, stdout, stderr io.Writer) (*environment, error) {
	opt := config.WithOptionalFile(defaultConfigFile)
	if configFile != "" {
		opt = config.WithFile(configFile)
	}
	settings, cfg, err := app.LoadSettings(ctx, opt)
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(settings, stderr)
	if err != nil {
		return nil, err
	}
	return &environment{
		stdout:   stdout,
		stderr:   stderr,
		settings: settings,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics.MustNew(),
	}, nil
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: placesweb <command> [-config file] [flags]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		_, _ = fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
}

func newFlagSet(env *environment, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("placesweb "+name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

func runBuild(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "build")
	out := fs.String("out", env.settings.Shell.OutDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sh, err := shell.New(
		shell.WithSettings(env.settings),
		shell.WithLogger(env.logger),
		shell.WithMetrics(env.metrics),
	)
	if err != nil {
		return err
	}
	artifacts, err := sh.Build(ctx, *out)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		_, _ = fmt.Fprintf(env.stdout, "%-8s %7d  %s\n", a.Encoding, a.Size, a.Path)
	}
	return nil
}

func newApp(env *environment, initial string, opts ...app.Option) (*app.App, error) {
	table, err := places.Routes()
	if err != nil {
		return nil, err
	}
	base := []app.Option{
		app.WithSettings(env.settings),
		app.WithRoutes(table),
		app.WithLogger(env.logger),
		app.WithMetrics(env.metrics),
	}
	if initial != "" {
		base = append(base, app.WithRouterOptions(router.WithHistory(router.NewMemoryHistory(initial))))
	}
	return app.New(append(base, opts...)...)
}

func runRoutes(_ context.Context, env *environment, args []string) error {
	if err := newFlagSet(env, "routes").Parse(args); err != nil {
		return err
	}
	a, err := newApp(env, "")
	if err != nil {
		return err
	}
	a.PrintRoutes(env.stdout)
	return nil
}

func runResolve(_ context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "resolve")
	path := fs.String("path", "", "path to resolve, e.g. /place/42")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		fs.Usage()
		return errUsage
	}

	table, err := places.Routes()
	if err != nil {
		return err
	}
	loc, err := table.Resolve(*path)
	if err != nil {
		return err
	}
	if !loc.IsMatched() {
		_, _ = fmt.Fprintf(env.stdout, "%s: no match (redirects to /)\n", loc.FullPath)
		return nil
	}

	_, _ = fmt.Fprintf(env.stdout, "%s: %s (%s)\n", loc.FullPath, loc.Name, loc.Route().Path())
	keys := make([]string, 0, len(loc.Params))
	for k := range loc.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(env.stdout, "  %s = %s\n", k, loc.Params[k])
	}
	return nil
}

func runRender(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "render")
	path := fs.String("path", "/", "location to boot at")
	out := fs.String("out", "", "write the document to this directory instead of stdout")
	banner := fs.Bool("banner", false, "print the startup banner to stderr")
	traced := fs.Bool("trace", false, "write boot and navigation spans as JSON to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tracerOpts := []tracing.Option{
		tracing.WithServiceName(env.settings.Service.Name),
		tracing.WithServiceVersion(env.settings.Service.Version),
	}
	if *traced {
		tracerOpts = append(tracerOpts, tracing.WithStdout(env.stderr), tracing.WithPrettyPrint())
	}
	tr, err := tracing.New(tracerOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = tr.Shutdown(context.WithoutCancel(ctx)) }()

	sh, err := shell.New(
		shell.WithSettings(env.settings),
		shell.WithLogger(env.logger),
		shell.WithMetrics(env.metrics),
	)
	if err != nil {
		return err
	}
	doc := sh.Document()

	opts := []app.Option{app.WithHost(doc), app.WithTracerProvider(tr.TracerProvider())}
	if *banner {
		opts = append(opts, app.WithBannerOutput(env.stderr))
	}
	a, err := newApp(env, *path, opts...)
	if err != nil {
		return err
	}
	if err = a.Run(ctx); err != nil {
		return err
	}
	defer func() { _ = a.Shutdown(ctx) }()

	if *out != "" {
		_, err = doc.Prerender(ctx, *out)
		return err
	}
	return doc.Render(env.stdout)
}

func runConfig(_ context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "config")
	format := fs.String("format", string(codec.TypeYAML), "output format: yaml, json or toml")
	key := fs.String("key", "", "print a single setting, e.g. maps.lang")
	if err := fs.Parse(args); err != nil {
		return err
	}

	enc, err := codec.GetEncoder(codec.Type(*format))
	if err != nil {
		return err
	}
	values, err := env.cfg.BoundValues()
	if err != nil {
		return err
	}
	values = redact(values)
	if *key != "" {
		switch v := config.Lookup(values, *key).(type) {
		case nil:
			_, _ = fmt.Fprintf(env.stderr, "placesweb config: unknown setting %q\n", *key)
			return errUsage
		case map[string]any:
			values = v
		default:
			_, err = fmt.Fprintln(env.stdout, v)
			return err
		}
	}
	data, err := enc.Encode(values)
	if err != nil {
		return err
	}
	_, err = env.stdout.Write(data)
	return err
}

// redact masks secrets before settings are printed.
func redact(values map[string]any) map[string]any {
	m, ok := values["maps"].(map[string]any)
	if !ok {
		return values
	}
	if key, _ := m["apikey"].(string); key != "" {
		m = maps.Clone(m)
		m["apikey"] = "***REDACTED***"
		values["maps"] = m
	}
	return values
}
