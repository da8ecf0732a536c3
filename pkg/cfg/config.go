package cfg

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cortexproject/cortex/pkg/util/flagext"
	"github.com/go-kit/kit/log/level"
)

const (
	DefaultPort     = "8754"
	DefaultWarning  = 600
	DefaultCritical = 3600
)

var ErrHostRequired = errors.New("the following arguments are required: --host")

type Config struct {
	Host         string
	Port         string
	Warning      int
	Critical     int
	AlwaysOK     bool
	PrintVersion bool
	LogLevel     LogLevel
}

// RegisterFlags registers every option the check accepts. Short and long
// aliases share the same destination.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.Host, "host", "", "Host IP address of your feeder.")
	f.StringVar(&c.Port, "port", DefaultPort, "Monitor Port of your feeder.")
	f.IntVar(&c.Warning, "w", DefaultWarning, "Alias for -warning.")
	f.IntVar(&c.Warning, "warning", DefaultWarning, "Set the warning threshold seconds since last connection update.")
	f.IntVar(&c.Critical, "c", DefaultCritical, "Alias for -critical.")
	f.IntVar(&c.Critical, "critical", DefaultCritical, "Set the critical threshold seconds since last connection update.")
	f.BoolVar(&c.AlwaysOK, "always-ok", false, "Always returns OK.")
	f.BoolVar(&c.PrintVersion, "V", false, "Alias for -version.")
	f.BoolVar(&c.PrintVersion, "version", false, "Print this builds version information")
	c.LogLevel.RegisterFlags(f)
}

// Defaults returns a Config holding only the registered flag defaults.
func Defaults() Config {
	var c Config
	flagext.DefaultValues(&c)
	return c
}

// Parse resolves args into a Config. Usage and flag errors are written to
// output. The returned error is flag.ErrHelp when help was requested.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	var c Config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	c.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unrecognized arguments: %s", strings.Join(fs.Args(), " "))
	}
	if c.PrintVersion {
		return c, nil
	}
	if c.Host == "" {
		return Config{}, ErrHostRequired
	}
	return c, nil
}

// URL is the feeder's monitor endpoint.
func (c Config) URL() string {
	return "http://" + c.Host + ":" + c.Port + "/monitor.json"
}

// LogLevel selects the minimum level written to stderr.
type LogLevel struct {
	name   string
	option level.Option
}

func (l *LogLevel) RegisterFlags(f *flag.FlagSet) {
	_ = l.Set("warn")
	f.Var(l, "log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")
}

func (l *LogLevel) String() string {
	return l.name
}

func (l *LogLevel) Set(s string) error {
	switch strings.ToLower(s) {
	case "debug":
		l.option = level.AllowDebug()
	case "info":
		l.option = level.AllowInfo()
	case "warn":
		l.option = level.AllowWarn()
	case "error":
		l.option = level.AllowError()
	default:
		return fmt.Errorf("unrecognized log level %q", s)
	}
	l.name = strings.ToLower(s)
	return nil
}

// Option is the go-kit filter for the selected level.
func (l LogLevel) Option() level.Option {
	if l.option == nil {
		return level.AllowWarn()
	}
	return l.option
}
