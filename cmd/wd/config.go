package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cliConfig is the fully-resolved set of flags/env vars driving one run,
// generalizing original_source/src/config.rs's `Config` (a single flat
// structopt struct) into a cobra+viper pair: flags are bound into viper so
// each one is also settable by its WD_* environment variable, the same
// one-source-of-truth idiom config/load.go uses elsewhere in the pack.
type cliConfig struct {
	Renderer         string
	PreferredRenderer string
	Reader           string
	FallbackWidth    int
	Style            string
	Regexes          string
	BufferMs         int
	LogFile          string
	NoClipboard      bool

	Kubeconfig string
	Namespace  string
	Selector   string

	OTLPAddr string

	App []string
}

// bindFlags registers every flag on cmd and binds it into v under the same
// name, with WD_<NAME> as the matching environment variable.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()

	flags.StringP("renderer", "r", "auto", "renderer to use: auto, plain, raw, json, styled, interactive")
	flags.String("preferred-renderer", "interactive", "renderer chosen by --renderer=auto when no override applies")
	flags.StringP("reader", "i", "auto", "reader to use: auto, stdin, hack, kubernetes, otlp, null")
	flags.IntP("fallback-width", "w", 120, "width used by the styled renderer when no terminal is detected")
	flags.StringP("style", "s", "default", "style profile: default, or base16:<path to yaml>")
	flags.String("regexes", "", "path to a YAML file of regex->message mappings")
	flags.Int("buffer-ms", 1000, "reorder buffer hold duration in milliseconds; 0 disables reordering")
	flags.String("log-file", "", "redirect diagnostic logging to this file instead of stderr")
	flags.Bool("no-clipboard", false, "disable clipboard copy commands in the interactive renderer")

	flags.String("kubeconfig", "", "path to a kubeconfig file (defaults to $KUBECONFIG or ~/.kube/config)")
	flags.StringP("namespace", "n", "", "comma-separated list of kubernetes namespaces to watch (default: all)")
	flags.String("selector", "", "kubernetes label selector to filter pods")

	flags.String("otlp-addr", ":4317", "listen address for --reader otlp's gRPC LogsService")

	v.SetEnvPrefix("WD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindPFlags(flags)
}

func loadConfig(v *viper.Viper, args []string) cliConfig {
	return cliConfig{
		Renderer:          v.GetString("renderer"),
		PreferredRenderer: v.GetString("preferred-renderer"),
		Reader:            v.GetString("reader"),
		FallbackWidth:     v.GetInt("fallback-width"),
		Style:             v.GetString("style"),
		Regexes:           v.GetString("regexes"),
		BufferMs:          v.GetInt("buffer-ms"),
		LogFile:           v.GetString("log-file"),
		NoClipboard:       v.GetBool("no-clipboard"),
		Kubeconfig:        v.GetString("kubeconfig"),
		Namespace:         v.GetString("namespace"),
		Selector:          v.GetString("selector"),
		OTLPAddr:          v.GetString("otlp-addr"),
		App:               args,
	}
}

func (c cliConfig) namespaces() []string {
	if c.Namespace == "" {
		return []string{""}
	}
	parts := strings.Split(c.Namespace, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// selector resolves the effective label selector: an explicit --selector
// flag wins, otherwise the first positional argument is treated as one,
// mirroring the original's `app: Vec<String>` catch-all.
func (c cliConfig) selector() string {
	if c.Selector != "" {
		return c.Selector
	}
	if len(c.App) > 0 {
		return c.App[0]
	}
	return ""
}
