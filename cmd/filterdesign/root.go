package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-filterdesign/internal/config"
)

const envPrefix = "FILTERDESIGN"

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "filterdesign",
		Short:         "Design digital filters and apply them to audio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is $HOME/.config/filterdesign/filterdesign.yaml)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringP("output", "o", "table", "output format (table, json, yaml)")

	pf.String("family", "butterworth", "butterworth, chebyshev1, chebyshev2, elliptic, bessel, linkwitz-riley or fir")
	pf.String("kind", "lowpass", "lowpass, highpass, bandpass or bandstop")
	pf.StringSlice("cutoff", []string{"1000"}, "cutoff in Hz, or f1,f2 for band kinds")
	pf.Float64("sample-rate", 48000, "sample rate in Hz")
	pf.Int("order", 4, "filter order")
	pf.Float64("ripple-db", 1, "passband ripple in dB (chebyshev1, elliptic)")
	pf.Float64("attenuation-db", 40, "stopband attenuation in dB (chebyshev2, elliptic)")
	pf.String("strategy", "cascade", "band construction: cascade or transform")
	pf.Int("taps", 101, "FIR length (odd)")
	pf.String("window", "hamming", "FIR window")

	root.AddCommand(newDesignCmd(a), newResponseCmd(a), newApplyCmd(a))

	return root
}

// init reads the config file and environment, binds the flags and builds
// the logger.
func (a *app) init(cmd *cobra.Command) error {
	v := a.v
	config.SetDefaults(v)

	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "filterdesign"))
		}

		v.AddConfigPath(".")
		v.SetConfigName("filterdesign")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || a.configFile != "" {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	logger, err := newLogger(v.GetString("log_level"))
	if err != nil {
		return err
	}

	a.logger = logger
	logger.Debug("configuration loaded", zap.String("file", v.ConfigFileUsed()))

	return nil
}

// bindFlags binds every flag under its snake_case key, so that
// --sample-rate, sample_rate in the file and FILTERDESIGN_SAMPLE_RATE all
// reach the same value. Flags set on the command line win.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}

		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

// request returns the filter described by flags, file and environment.
func (a *app) request() (config.Request, error) {
	return config.FromViper(a.v)
}
