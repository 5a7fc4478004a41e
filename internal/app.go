package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ak7sky/routeset-calc/internal/config"
	"github.com/ak7sky/routeset-calc/internal/core/model"
	"github.com/ak7sky/routeset-calc/internal/core/service"
	"github.com/ak7sky/routeset-calc/internal/formatter"
	"github.com/ak7sky/routeset-calc/internal/logger"
	"github.com/ak7sky/routeset-calc/internal/reserved"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	Name      = "routeset-calc"
	EnvPrefix = "ROUTESET"

	defaultInclude  = "0.0.0.0/0"
	defaultLogLevel = "warn"
)

var (
	errParseFlags    = "failed to parse flags"
	errParseEnv      = "failed to apply environment"
	errLoadProfile   = "failed to load profile"
	errParseNetwork  = "failed to parse"
	errInvalidOption = "invalid option"
)

// EnvReplacer maps flag names to environment variable suffixes.
var EnvReplacer = strings.NewReplacer("-", "_")

type options struct {
	include          []string
	exclude          []string
	includeOverride  []string
	excludePrivateV4 bool
	excludePrivateV6 bool
	configPath       string
	format           string
	logLevel         string
}

func newFlagSet(opts *options) *pflag.FlagSet {
	f := pflag.NewFlagSet(Name, pflag.ContinueOnError)
	f.StringSliceVarP(&opts.include, "include", "i", nil,
		"Include IP range (repeatable). If no range is included anywhere, "+defaultInclude+" (all IPv4 addresses) is included")
	f.StringSliceVarP(&opts.exclude, "exclude", "e", nil,
		"Exclude IP range (repeatable)")
	f.BoolVar(&opts.excludePrivateV4, "exclude-private-ipv4-ranges", false,
		"Exclude private/non-routable IPv4 ranges")
	f.BoolVar(&opts.excludePrivateV6, "exclude-private-ipv6-ranges", false,
		"Exclude private/non-routable IPv6 ranges")
	f.StringSliceVarP(&opts.includeOverride, "include-override", "I", nil,
		"Include IP range even if it's part of an excluded range (repeatable)")
	f.StringVarP(&opts.configPath, "config", "c", "",
		"YAML profile with include/exclude/includeOverride lists")
	f.StringVar(&opts.format, "format", "",
		"Output format: csv or lines (default csv)")
	f.StringVar(&opts.logLevel, "log-level", "",
		"Log level written to stderr: debug, info, warn or error (default "+defaultLogLevel+")")
	f.SortFlags = false
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n%s", Name, f.FlagUsages())
		fmt.Fprintf(os.Stderr, "\nEvery flag can also be set through %s_<FLAG> environment variables, e.g. %s_EXCLUDE.\n",
			EnvPrefix, EnvPrefix)
	}
	return f
}

// fromEnv sets every flag not given on the command line from its environment variable, if any.
func fromEnv(flagSet *pflag.FlagSet) error {
	env := viper.New()
	env.SetEnvPrefix(EnvPrefix)
	env.SetEnvKeyReplacer(EnvReplacer)
	env.AutomaticEnv()

	var err error
	flagSet.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !env.IsSet(f.Name) {
			return
		}
		if value := env.GetString(f.Name); value != "" {
			if setErr := flagSet.Set(f.Name, value); setErr != nil {
				err = fmt.Errorf("%s_%s: %w", EnvPrefix, strings.ToUpper(EnvReplacer.Replace(f.Name)), setErr)
			}
		}
	})
	return err
}

// Run computes the network set described by args and writes it to stdout.
// It returns pflag.ErrHelp when help was requested.
func Run(args []string, stdout io.Writer) error {
	opts := &options{}
	flagSet := newFlagSet(opts)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return err
		}
		return fmt.Errorf("%s: %w", errParseFlags, err)
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments %q", errParseFlags, flagSet.Args())
	}
	if err := fromEnv(flagSet); err != nil {
		return fmt.Errorf("%s: %w", errParseEnv, err)
	}

	if opts.configPath != "" {
		profile, err := config.LoadProfile(opts.configPath)
		if err != nil {
			return fmt.Errorf("%s: %w", errLoadProfile, err)
		}
		opts.merge(profile)
	}

	if opts.logLevel == "" {
		opts.logLevel = defaultLogLevel
	}
	if !logger.ValidLevel(opts.logLevel) {
		return fmt.Errorf("%s: unknown log level %q", errInvalidOption, opts.logLevel)
	}
	style, err := formatter.ParseStyle(opts.format)
	if err != nil {
		return fmt.Errorf("%s: %w", errInvalidOption, err)
	}
	appLogger := logger.NewLogger(opts.logLevel)

	if len(opts.include) == 0 {
		opts.include = []string{defaultInclude}
	}

	// Every network is parsed before the set is touched: bad input aborts the whole run.
	included, err := parseAll("included", opts.include)
	if err != nil {
		return err
	}
	excluded, err := parseAll("excluded", opts.exclude)
	if err != nil {
		return err
	}
	overrides, err := parseAll("override-included", opts.includeOverride)
	if err != nil {
		return err
	}
	if opts.excludePrivateV4 {
		excluded = append(excluded, reserved.PrivateIPv4()...)
	}
	if opts.excludePrivateV6 {
		excluded = append(excluded, reserved.PrivateIPv6()...)
	}
	appLogger.Debug("networks: %d included, %d excluded, %d override-included",
		len(included), len(excluded), len(overrides))

	v4, v6 := calculate(included, excluded, overrides)
	appLogger.Info("result: %d IPv4 and %d IPv6 networks", len(v4), len(v6))

	_, err = fmt.Fprintln(stdout, formatter.Format(v4, v6, style))
	return err
}

func calculate(included, excluded, overrides []model.Prefix) (v4, v6 []model.Prefix) {
	set := service.New()
	for _, prefix := range included {
		set.IncludeNetwork(prefix)
	}
	for _, prefix := range excluded {
		set.ExcludeNetwork(prefix)
	}
	for _, prefix := range overrides {
		set.IncludeNetwork(prefix)
	}
	return set.GetNetworks()
}

func parseAll(kind string, cidrs []string) ([]model.Prefix, error) {
	prefixes := make([]model.Prefix, 0, len(cidrs))
	for _, cidr := range cidrs {
		prefix, err := model.ParsePrefix(cidr)
		if err != nil {
			return nil, fmt.Errorf("%s %s range: %w", errParseNetwork, kind, err)
		}
		prefixes = append(prefixes, prefix)
	}
	return prefixes, nil
}

// merge puts the profile lists in front of the command-line ones.
// Command-line log level and format win over the profile.
func (opts *options) merge(profile *config.Profile) {
	opts.include = append(append([]string{}, profile.Include...), opts.include...)
	opts.exclude = append(append([]string{}, profile.Exclude...), opts.exclude...)
	opts.includeOverride = append(append([]string{}, profile.IncludeOverride...), opts.includeOverride...)
	opts.excludePrivateV4 = opts.excludePrivateV4 || profile.ExcludePrivateIPv4Ranges
	opts.excludePrivateV6 = opts.excludePrivateV6 || profile.ExcludePrivateIPv6Ranges
	if opts.logLevel == "" {
		opts.logLevel = profile.LogLevel
	}
	if opts.format == "" {
		opts.format = profile.Format
	}
}
