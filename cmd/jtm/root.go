package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dhamidi/classmodel/classpath"
	"github.com/dhamidi/classmodel/format"
	"github.com/dhamidi/classmodel/internal/config"
	"github.com/dhamidi/classmodel/internal/logger"
	"github.com/dhamidi/classmodel/typemodel"
)

// app carries what every subcommand needs once the root command has read
// its configuration.
type app struct {
	v          *viper.Viper
	configFile string

	cfg   *config.Config
	log   *zap.SugaredLogger
	chain *classpath.Chain
	reg   *typemodel.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "jtm",
		Short: "Inspect the type model of compiled JVM classes",
		Long: `Inspect classes, interfaces, enums and annotations on a classpath.

Settings come from flags, JTM_* environment variables and jtm.toml, in
that order of precedence. Type names may be given in source form
(java.util.Map$Entry, int[]) or in internal form (java/util/Map$Entry).

Examples:
  jtm -c build/classes describe com.acme.Person
  jtm --java-home $JAVA_HOME -f java describe java.util.List
  jtm -c app.jar imports com.acme.Service`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./jtm.toml, then jtm/jtm.toml in the user config directory)")
	flags.StringSliceP("classpath", "c", nil, "classpath entries: directories, jars or jmods")
	flags.String("java-home", "", "JDK whose jmods are appended to the classpath")
	flags.StringP("format", "f", "line", "output format ("+strings.Join(format.Names(), ", ")+")")
	flags.String("always-available", "java.lang", "package left out of import lists")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "log as JSON")

	for key, name := range map[string]string{
		"classpath":                "classpath",
		"java_home":                "java-home",
		"format":                   "format",
		"always_available_package": "always-available",
		"log.level":                "log-level",
		"log.json":                 "log-json",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(newDescribeCmd(a))
	cmd.AddCommand(newImportsCmd(a))
	cmd.AddCommand(newOverridesCmd(a))
	cmd.AddCommand(newMembersCmd(a))

	return cmd
}

func (a *app) open(cmd *cobra.Command) error {
	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	entries, err := cfg.ClasspathEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("empty classpath: use --classpath, --java-home, JTM_CLASSPATH or jtm.toml")
	}
	chain, err := classpath.Open(entries)
	if err != nil {
		return errors.Wrap(err, "open classpath")
	}
	log.Debugw("classpath opened", "entries", entries)

	reg, err := typemodel.NewRegistry(chain,
		typemodel.WithLogger(log),
		typemodel.WithAlwaysAvailablePackage(cfg.AlwaysAvailablePackage),
	)
	if err != nil {
		chain.Close()
		return err
	}

	a.cfg = cfg
	a.log = log
	a.chain = chain
	a.reg = reg
	return nil
}

func (a *app) close() error {
	if a.chain == nil {
		return nil
	}
	err := a.chain.Close()
	_ = a.log.Sync()
	a.chain = nil
	return err
}

// lookup resolves a type name given on the command line.
func (a *app) lookup(name string) (typemodel.Type, error) {
	t, err := a.reg.TypeByName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "look up %s", name)
	}
	return t, nil
}

// memberLister is implemented by classes and interfaces.
type memberLister interface {
	typemodel.Type
	FieldsSorted() ([]*typemodel.Field, error)
	MethodsSorted() ([]*typemodel.Method, error)
}

func (a *app) lookupDeclared(name string) (memberLister, error) {
	t, err := a.lookup(name)
	if err != nil {
		return nil, err
	}
	ml, ok := t.(memberLister)
	if !ok {
		return nil, errors.Wrapf(typemodel.ErrWrongKind, "%s is a %s, want a class or interface", t.ExternalName(), t.Kind())
	}
	return ml, nil
}
