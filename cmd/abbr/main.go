package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yleoer/abbr/pkg/abbr"
	"github.com/yleoer/abbr/pkg/batch"
	"github.com/yleoer/abbr/pkg/config"
	"github.com/yleoer/abbr/pkg/converter"
	"github.com/yleoer/abbr/pkg/database"
	"github.com/yleoer/abbr/pkg/server"
	"github.com/yleoer/abbr/pkg/service"
	"github.com/yleoer/abbr/pkg/transcriber"
	"github.com/yleoer/abbr/pkg/watcher"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "abbr",
		Short:        "Chinese initials abbreviation service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newConvertCmd(), newBatchCmd(), newDictCmd())
	return root
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[Abbr] ", log.LstdFlags|log.Lshortfile)
}

// app 各子命令共用的依赖
type app struct {
	cfg     *config.Config
	store   database.PhraseStore
	service *service.Service
	logger  *log.Logger
}

// newApp 加载配置并初始化所有依赖服务
func newApp(logger *log.Logger) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Printf("Configuration loaded: ListenAddr=%s, DBPath=%s, TranscriberURL=%q, TradToSimp=%v",
		cfg.ListenAddr, cfg.DBPath, cfg.TranscriberURL, cfg.TradToSimp)

	// 拼音查询
	var t abbr.Transcriber = transcriber.NewPinyin()
	if cfg.TranscriberURL != "" {
		remote := transcriber.NewRemote(cfg.TranscriberURL, cfg.HTTPTimeout, logger)
		logger.Printf("Using transcriber %s", remote)
		t = remote
	}
	// 繁简转换
	var simplifier converter.Simplifier = converter.Noop{}
	if cfg.TradToSimp {
		s, err := converter.NewOpenCCSimplifier(logger)
		if err != nil {
			logger.Printf("WARN: %v. Traditional input will not be simplified.", err)
		} else {
			simplifier = s
		}
	}
	// 自定义词库
	store, err := database.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}
	svc, err := service.New(t, simplifier, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &app{cfg: cfg, store: store, service: svc, logger: logger}, nil
}

func (a *app) Close() {
	a.store.Close()
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /convert over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stdout)
			logger.Println("Starting abbreviation service...")
			a, err := newApp(logger)
			if err != nil {
				logger.Fatalf("Failed to initialize: %v", err)
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watcher.New(a.cfg.DBPath, a.cfg.ReloadDebounce, a.service.Reload, logger)
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Printf("ERROR: Dictionary watcher stopped: %v", err)
				}
			}()

			srv := server.New(a.cfg.ListenAddr, a.service, a.cfg.KeypadDefault, logger)
			return srv.ListenAndServe(ctx)
		},
	}
}

func newConvertCmd() *cobra.Command {
	var keypad bool
	cmd := &cobra.Command{
		Use:   "convert <text>...",
		Short: "Print the abbreviation of each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(newLogger(io.Discard))
			if err != nil {
				return err
			}
			defer a.Close()
			for _, text := range args {
				res, err := a.service.Convert(text, keypad)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), server.FormatResult(res, keypad))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&keypad, "keypad", "k", false, "append keypad digits")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		keypad bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Convert a UTF-8 or GBK text file line by line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stderr)
			a, err := newApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			_, err = batch.NewConverter(a.service, keypad, logger).ConvertFile(args[0], out)
			return err
		},
	}
	cmd.Flags().BoolVarP(&keypad, "keypad", "k", false, "append keypad digits")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
