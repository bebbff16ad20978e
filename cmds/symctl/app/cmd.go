package app

import (
	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/symbolic/pkg/config"
	"github.com/mandelsoft/symbolic/pkg/session"
	"github.com/mandelsoft/symbolic/pkg/utils"
)

type Options struct {
	fs    vfs.FileSystem
	lctx  logging.Context
	log   logging.Logger
	flags *pflag.FlagSet

	logLevel string
	maxDepth int
	feeds    []string
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.logLevel, "log-level", "L", "", "log level (error, warn, info, debug, trace)")
	flags.IntVarP(&o.maxDepth, "max-depth", "D", 0, "maximum evaluation depth (0 = unlimited)")
	o.flags = flags
}

// Complete merges the settings from the config
// files into the options not given as flag.
func (o *Options) Complete() error {
	cfg, err := config.GetConfig(o.fs)
	if err != nil {
		return err
	}
	if !o.flags.Changed("log-level") {
		o.logLevel = cfg.GetLogLevel()
	}
	if !o.flags.Changed("max-depth") {
		o.maxDepth = cfg.GetMaxDepth()
	}
	o.feeds = cfg.Feeds
	err = ConfigureLogging(o.lctx, o.logLevel)
	if err != nil {
		return err
	}
	o.log.Debug("using max depth {{depth}}", "depth", o.maxDepth)
	return nil
}

func (o *Options) Session() *session.Session[int] {
	return session.New[int](o.lctx, o.maxDepth)
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	lctx := logging.DefaultContext()
	opts := &Options{
		fs:   utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
		lctx: lctx,
		log:  lctx.Logger(REALM),
	}

	maincmd := &cobra.Command{
		Use:   "symctl <options> <cmd> <args>",
		Short: "evaluate symbolic expressions",
		Long: `
This command can be used to evaluate and inspect arithmetic
expressions. Identifiers not defined by an assignment are inputs
and must be fed with values. Configuration is read from .symctl
files in the home, config and working directory.
`,
		Run:              nil,
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete()
		},
	}
	TweakCommand(maincmd)

	opts.AddFlags(maincmd.PersistentFlags())

	maincmd.AddCommand(NewEval(opts))
	maincmd.AddCommand(NewDescribe(opts))
	maincmd.AddCommand(NewRandom(opts))
	return maincmd
}
