// Command tplfuncs evaluates expressions against the template builtins.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unijord/tplfuncs/internal/config"
	"github.com/unijord/tplfuncs/pkg/builtins"
	tplcel "github.com/unijord/tplfuncs/pkg/cel"
	"github.com/unijord/tplfuncs/pkg/cel/ext"
	"github.com/unijord/tplfuncs/pkg/hclfuncs"
	"github.com/unijord/tplfuncs/pkg/value"
)

const (
	Version = "0.1.0"
	appName = "tplfuncs"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	varsPath   string
	vars       map[string]string
	engine     string
	now        string
	dateLayout string
	logLevel   string
	namespace  string
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Evaluate expressions with the template builtins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	eval := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate one expression and print its JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			out, err := evaluate(cfg, args[0], opts.namespace, logger)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), out)
		},
	}
	eval.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	eval.Flags().StringVar(&opts.varsPath, "vars", "", "Variables file (YAML or JSON)")
	eval.Flags().StringToStringVar(&opts.vars, "var", nil, "String variable name=value (repeatable)")
	eval.Flags().StringVarP(&opts.engine, "engine", "e", "", "Expression language (cel, hcl)")
	eval.Flags().StringVar(&opts.now, "now", "", "Reference time for date builtins")
	eval.Flags().StringVar(&opts.dateLayout, "date-layout", "", "Default output layout for dates")
	eval.Flags().StringVar(&opts.namespace, "namespace", "", "CEL namespace for builtins (e.g. fn)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List builtins with their validation policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := builtins.Build(nil, builtins.Config{})
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), reg)
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}

	cmd.AddCommand(eval, list, version)
	return cmd
}

// load resolves the configuration: defaults, then the config file, then
// flags that were set explicitly.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.varsPath != "" {
		vars, err := config.LoadVars(o.varsPath)
		if err != nil {
			return nil, err
		}
		cfg.MergeVars(vars)
	}
	for k, v := range o.vars {
		cfg.MergeVars(map[string]any{k: v})
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine = o.engine
	}
	if flags.Changed("now") {
		cfg.Now = o.now
	}
	if flags.Changed("date-layout") {
		cfg.DateLayout = o.dateLayout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func evaluate(cfg *config.Config, expr, namespace string, logger *slog.Logger) (value.Value, error) {
	ctx := make(builtins.Context, len(cfg.Vars)+1)
	for k, v := range cfg.Vars {
		ctx[k] = v
	}
	if cfg.Now != "" {
		ctx[builtins.ContextNow] = cfg.Now
	}

	reg, err := builtins.Build(ctx, builtins.Config{Logger: logger, DateLayout: cfg.DateLayout})
	if err != nil {
		return nil, err
	}
	logger.Debug("evaluating expression", "engine", cfg.Engine, "vars", len(ctx))

	switch cfg.Engine {
	case config.EngineHCL:
		evalCtx, err := hclfuncs.EvalContext(reg, ctx)
		if err != nil {
			return nil, err
		}
		return hclfuncs.Eval(expr, evalCtx)
	default:
		var opts []ext.Option
		if namespace != "" {
			opts = append(opts, ext.WithNamespace(namespace))
		}
		env, err := tplcel.NewEnvBuilder().
			WithContextVariables(ctx).
			WithBuiltins(reg, opts...).
			Build()
		if err != nil {
			return nil, fmt.Errorf("cel env: %w", err)
		}
		compiled, err := tplcel.NewCompiler(env).Compile(expr)
		if err != nil {
			return nil, err
		}
		result := tplcel.NewEvaluator().Eval(compiled, ctx)
		if !result.Ok() {
			return nil, result.Err()
		}
		logger.Debug("evaluated expression", "type", compiled.OutputType(), "kind", result.Kind())
		return result.Value(), nil
	}
}

// printValue writes v as indented JSON. Values JSON cannot carry (NaN,
// infinities) are printed in their string form.
func printValue(w io.Writer, v value.Value) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(w, value.ToString(v))
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printCatalog(w io.Writer, reg *builtins.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPOLICY\tARITY")
	for _, name := range reg.Names() {
		b, _ := reg.Lookup(name)
		minArgs, maxArgs := b.Policy().Arity()
		upper := "*"
		if maxArgs != builtins.Unbounded {
			upper = strconv.Itoa(maxArgs)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d..%s\n", name, b.Policy().Kind(), minArgs, upper)
	}
	return tw.Flush()
}
