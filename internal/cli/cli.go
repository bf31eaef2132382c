package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/urfave/cli"
)

// Streams are the standard streams used by the command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// BuildArgs carries build time information shown by the version command.
type BuildArgs struct {
	Version string
	Commit  string
	Date    string
}

type runner struct {
	streams Streams
	build   BuildArgs
}

// Execute runs the debounce command with the given arguments. args[0] is
// the program name.
func Execute(args []string, streams Streams, build BuildArgs) error {
	r := &runner{streams: streams, build: build}

	app := cli.App{
		Name:      "debounce",
		HelpName:  "debounce",
		Usage:     "coalesce bursts of lines or file events",
		Version:   build.Version,
		UsageText: "debounce [command] [arguments...]",
		Writer:    streams.Out,
		ErrWriter: streams.Err,
		Commands: []cli.Command{
			{
				Name:   "lines",
				Usage:  "coalesce stdin lines into stdout",
				Action: r.lines,
				Flags:  policyFlags,
			},
			{
				Name:      "watch",
				Usage:     "run a command when watched files settle",
				UsageText: "debounce watch --path DIR [--path DIR] -- COMMAND [ARGS...]",
				Action:    r.watch,
				Flags:     watchFlags,
			},
			{
				Name:   "version",
				Usage:  "print version information",
				Action: r.version,
			},
		},
		Action:      r.lines,
		Flags:       policyFlags,
		HideVersion: true,
	}

	return app.Run(args)
}

func (r *runner) version(ctx *cli.Context) error {
	_, err := fmt.Fprintf(
		r.streams.Out,
		"debounce %s (%s_%s)\nBuild: %s=%s\n",
		r.build.Version,
		runtime.GOOS,
		runtime.GOARCH,
		r.build.Date,
		r.build.Commit,
	)

	return err
}
