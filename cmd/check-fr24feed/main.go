package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/common/version"

	"github.com/slim-bean/check-fr24feed/pkg/cfg"
	"github.com/slim-bean/check-fr24feed/pkg/check"
	"github.com/slim-bean/check-fr24feed/pkg/fr24feed"
	"github.com/slim-bean/check-fr24feed/pkg/plugin"
)

const program = "check_fr24feed"

// newSource builds the feeder client the check reads from.
var newSource = func(logger log.Logger, url string) check.Source {
	return fr24feed.New(logger, url)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one check and returns the process exit code. Every failure,
// including a panic, ends in the Unknown state.
func run(args []string, stdout, stderr io.Writer) (code int) {
	var logger log.Logger
	logger = log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	logger = log.With(logger, "ts", log.DefaultTimestamp, "caller", log.DefaultCaller)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(stdout, plugin.Sanitize(fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())))
			code = int(plugin.Unknown)
		}
	}()

	config, err := cfg.Parse(program, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			err = errors.New("help requested")
		}
		if err := plugin.Write(stdout, plugin.UnknownResult("invalid arguments: "+err.Error())); err != nil {
			level.Error(logger).Log("msg", "failed writing plugin output", "err", err)
		}
		return int(plugin.Unknown)
	}
	if config.PrintVersion {
		fmt.Fprintln(stdout, version.Print(program))
		return int(plugin.OK)
	}

	logger = level.NewFilter(logger, config.LogLevel.Option())

	checker := check.New(logger, config, newSource(logger, config.URL()))
	res, err := checker.Run(context.Background())
	if err != nil {
		var ce *check.Error
		if errors.As(err, &ce) {
			level.Debug(logger).Log("msg", "check failed", "code", ce.Code, "err", ce.Err)
		}
		res = plugin.UnknownResult(err.Error())
	}

	if err := plugin.Write(stdout, res); err != nil {
		level.Error(logger).Log("msg", "failed writing plugin output", "err", err)
		return int(plugin.Unknown)
	}
	return plugin.ExitCode(res, config.AlwaysOK)
}
