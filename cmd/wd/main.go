// Command wd tails logs from stdin, Kubernetes pods, or an OTLP gRPC
// stream and renders them, either as a scrollable interactive dashboard
// or as one of several non-interactive line formats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/control-theory/wd/internal/clip"
	"github.com/control-theory/wd/internal/k8s"
	"github.com/control-theory/wd/internal/logging"
	"github.com/control-theory/wd/internal/parser"
	"github.com/control-theory/wd/internal/regexmap"
	"github.com/control-theory/wd/internal/render"
	"github.com/control-theory/wd/internal/reorder"
	"github.com/control-theory/wd/internal/style"
	"github.com/control-theory/wd/internal/tui"

	"github.com/control-theory/wd/internal/reader"
	k8sreader "github.com/control-theory/wd/internal/reader/k8s"
	"github.com/control-theory/wd/internal/reader/otlp"
)

func main() {
	v := viper.New()

	root := &cobra.Command{
		Use:   "wd [selector]",
		Short: "wd tails and renders logs from stdin, Kubernetes, or OTLP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(loadConfig(v, args))
		},
	}
	bindFlags(root, v)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wd:", err)
		os.Exit(1)
	}
}

func run(cfg cliConfig) error {
	closer, err := logging.Configure(cfg.LogFile)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
		if f, ok := closer.(*os.File); ok {
			klog.SetOutput(f)
		}
	}

	clip.SetEnabled(!cfg.NoClipboard)

	styleConfig, err := style.ParseConfig(cfg.Style)
	if err != nil {
		logging.Errorf("invalid --style %q, using default: %v", cfg.Style, err)
		styleConfig = style.Default()
	}

	var mappings []parser.Mapping
	if cfg.Regexes != "" {
		mappings, err = regexmap.Load(cfg.Regexes)
		if err != nil {
			logging.Errorf("failed to load --regexes %q: %v", cfg.Regexes, err)
		}
	}
	chain := parser.NewChain(mappings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	readerName := resolveReader(cfg)
	messages := make(chan render.Entry, 256)

	var k8sSrc *k8s.KubernetesLogSource
	switch readerName {
	case "stdin":
		go reader.ReadStdin(ctx, chain, messages)
	case "hack":
		go reader.ReadStdinHack(ctx, chain, messages)
	case "null":
		go reader.ReadNull(ctx, chain, messages)
	case "otlp":
		go func() {
			if err := otlp.Listen(ctx, cfg.OTLPAddr, chain, messages); err != nil {
				logging.Errorf("otlp reader stopped: %v", err)
			}
		}()
	case "kubernetes":
		kcfg := k8s.NewDefaultConfig()
		if cfg.Kubeconfig != "" {
			kcfg.Kubeconfig = cfg.Kubeconfig
		}
		kcfg.Namespaces = cfg.namespaces()
		kcfg.Selector = cfg.selector()

		src, err := k8s.NewKubernetesLogSource(kcfg)
		if err != nil {
			return fmt.Errorf("building kubernetes log source: %w", err)
		}
		if err := src.Start(); err != nil {
			return fmt.Errorf("starting kubernetes log source: %w", err)
		}
		defer src.Stop()

		k8sSrc = src
		go k8sreader.Read(ctx, src, chain, messages)
	}

	entries := messages
	if cfg.BufferMs > 0 {
		reordered := make(chan render.Entry, 256)
		go reorder.Run(ctx, messages, reordered, time.Duration(cfg.BufferMs)*time.Millisecond)
		entries = reordered
	}

	rendererName := resolveRenderer(cfg)

	switch rendererName {
	case "interactive":
		if err := tui.Run(styleConfig, entries, k8sSrc); err != nil {
			return err
		}
	case "json":
		runLoop(render.NewJSONRenderer(os.Stdout), entries)
	case "raw":
		runLoop(render.NewRawRenderer(os.Stdout), entries)
	case "plain":
		runLoop(render.NewPlainRenderer(os.Stdout, cfg.FallbackWidth), entries)
	case "styled":
		sr := render.NewStyledRenderer(os.Stdout, styleConfig, cfg.FallbackWidth)
		if path, ok := base16Path(cfg.Style); ok {
			w, err := style.WatchBase16(path, sr.SetConfig)
			if err == nil {
				defer w.Close()
			} else {
				logging.Errorf("watching %s for live style reload: %v", path, err)
			}
		}
		runLoop(sr, entries)
	}

	if readerName == "null" {
		os.Exit(1)
	}
	return nil
}

// lineRenderer is the shared contract every non-interactive renderer
// implements, mirroring spec.md's "(config, in_channel) -> worker_handle"
// renderer contract.
type lineRenderer interface {
	Render(e render.Entry) error
}

func runLoop(r lineRenderer, entries <-chan render.Entry) {
	for e := range entries {
		if err := r.Render(e); err != nil {
			logging.Errorf("render error: %v", err)
			return
		}
		if _, ok := e.(render.EofEntry); ok {
			return
		}
	}
}

// resolveReader implements config.rs's get_auto_reader, extended with the
// otlp/null readers and the namespace/selector flags SPEC_FULL.md adds:
// an explicit --reader always wins; auto prefers kubernetes when a
// namespace, selector or positional app selector was given (--kubeconfig
// alone does not count), falls back to the
// /dev/stdin workaround on unix when input is actually piped in, and to
// null (nothing to read, exit 1) when stdin is an interactive terminal.
func resolveReader(cfg cliConfig) string {
	if cfg.Reader != "auto" {
		return cfg.Reader
	}

	if cfg.Namespace != "" || cfg.Selector != "" || len(cfg.App) > 0 {
		return "kubernetes"
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "null"
	}

	if runtime.GOOS != "windows" {
		return "hack"
	}
	return "stdin"
}

// resolveRenderer implements config.rs's get_auto_renderer: an explicit
// --renderer always wins; auto defers to --preferred-renderer (itself
// forced to interactive rather than auto, to avoid the obvious loop) when
// stdout is a terminal, and to plain otherwise.
func resolveRenderer(cfg cliConfig) string {
	if cfg.Renderer != "auto" {
		return cfg.Renderer
	}

	preferred := cfg.PreferredRenderer
	if preferred == "" || preferred == "auto" {
		preferred = "interactive"
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return preferred
	}
	return "plain"
}

var base16FlagRE = regexp.MustCompile(`^(?:base16|b16)[:=](\S+)$`)

func base16Path(style string) (path string, ok bool) {
	m := base16FlagRE.FindStringSubmatch(style)
	if m == nil {
		return "", false
	}
	return m[1], true
}
