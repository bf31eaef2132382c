package cli

import (
	"github.com/romdo/go-debounce/v2/internal/config"
	"github.com/urfave/cli"
)

const (
	flagWait        = "wait"
	flagMaxWait     = "max-wait"
	flagLeading     = "leading"
	flagTrailing    = "trailing"
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagPath        = "path"
	flagMinInterval = "min-interval"
)

var policyFlags = []cli.Flag{
	cli.DurationFlag{
		Name:  flagWait,
		Value: config.DefaultWait,
		Usage: "quiet period before a trailing invocation",
	},
	cli.DurationFlag{
		Name:  flagMaxWait,
		Usage: "longest time calls may be delayed, 0 disables it",
	},
	cli.BoolFlag{
		Name:  flagLeading,
		Usage: "invoke on the first call of a burst",
	},
	cli.BoolFlag{
		Name:  flagTrailing,
		Usage: "invoke after the burst goes quiet (default when neither is set)",
	},
	cli.StringFlag{
		Name:  flagConfig,
		Usage: "path to a YAML policy file",
	},
	cli.StringFlag{
		Name:  flagLogLevel,
		Value: "info",
		Usage: "log level: trace, debug, info, warn, error or off",
	},
}

var watchFlags = append([]cli.Flag{
	cli.StringSliceFlag{
		Name:  flagPath,
		Usage: "file or directory to watch, may be repeated",
	},
	cli.DurationFlag{
		Name:  flagMinInterval,
		Usage: "minimum time between command runs",
	},
}, policyFlags...)

// settings merges the policy file named by --config with flags set on the
// command line. Flags win.
func settings(ctx *cli.Context) (*config.Settings, error) {
	s := config.Default()
	if path := ctx.String(flagConfig); path != "" {
		var err error
		s, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if ctx.IsSet(flagWait) {
		s.Policy.Wait = ctx.Duration(flagWait)
	}
	if ctx.IsSet(flagMaxWait) {
		s.Policy.MaxWait = ctx.Duration(flagMaxWait)
	}
	if ctx.IsSet(flagLeading) {
		s.Policy.Leading = ctx.Bool(flagLeading)
	}
	if ctx.IsSet(flagTrailing) {
		s.Policy.Trailing = ctx.Bool(flagTrailing)
	}
	if ctx.IsSet(flagLogLevel) {
		s.LogLevel = ctx.String(flagLogLevel)
	}
	if ctx.IsSet(flagPath) {
		s.Watch.Paths = ctx.StringSlice(flagPath)
	}
	if ctx.IsSet(flagMinInterval) {
		s.Watch.MinInterval = ctx.Duration(flagMinInterval)
	}

	if err := s.Policy.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}
