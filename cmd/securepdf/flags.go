package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hackatronbits/Team-Encryptors/internal/app"
	ui "github.com/hackatronbits/Team-Encryptors/internal/cli"
	"github.com/hackatronbits/Team-Encryptors/internal/config"
	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func cmd() *cli.Command {
	return &cli.Command{
		Name:    "securepdf",
		Usage:   "PDF redaction client and watch agent",
		Version: version,
		Commands: []*cli.Command{
			agentCmd(),
			redactCmd(),
			shellCmd(),
		},
	}
}

func agentCmd() *cli.Command {
	return &cli.Command{
		Name:  "agent",
		Usage: "Watch a directory and redact every PDF dropped into it",
		Flags: agentFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := loggerFromContext(ctx)
			if err != nil {
				return err
			}

			cfg := config.Load(cmd)

			return app.New(log, cfg).Run(ctx)
		},
	}
}

func redactCmd() *cli.Command {
	flags := append(clientFlags(),
		&cli.BoolFlag{
			Name:    "download",
			Aliases: []string{"d"},
			Usage:   "Download the produced file after redaction",
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage:   "Set directory for downloaded files",
			Value:   ".",
		},
	)

	return &cli.Command{
		Name:      "redact",
		Usage:     "Redact a single PDF and print its download link",
		ArgsUsage: "<file>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := loggerFromContext(ctx)
			if err != nil {
				return err
			}

			if cmd.Args().Len() != 1 {
				return errors.New("expected exactly one file to redact")
			}

			ctrl, _ := newController(log, config.LoadRedactor(cmd))

			ctrl.Select(cmd.Args().First())
			ctrl.Submit(ctx)

			state := ctrl.State()
			if state.ResultURL == "" {
				return errors.New(state.Notice)
			}

			fmt.Println("PDF redacted successfully.")
			fmt.Println("Download Redacted PDF:", state.ResultURL)
			if state.UsedOCR {
				fmt.Println(ui.OCRAdvisory)
			}

			if cmd.Bool("download") {
				path, err := ctrl.Download(ctx, cmd.String("output-dir"))
				if err != nil {
					return fmt.Errorf("failed to download produced file: %w", err)
				}
				fmt.Println("Saved to", path)
			}

			return nil
		},
	}
}

func shellCmd() *cli.Command {
	flags := append(clientFlags(), &cli.StringFlag{
		Name:    "output-dir",
		Aliases: []string{"o"},
		Usage:   "Set default directory for downloaded files",
		Value:   ".",
	})

	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive redaction shell",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log, err := loggerFromContext(ctx)
			if err != nil {
				return err
			}

			ctrl, client := newController(log, config.LoadRedactor(cmd))

			return ui.NewSession(ctrl, client, cmd.String("output-dir"), os.Stdin, os.Stdout).Run(ctx)
		},
	}
}

func loggerFromContext(ctx context.Context) (*slog.Logger, error) {
	log, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return nil, errors.New("failed to get logger from context")
	}

	return log, nil
}

func newController(log *slog.Logger, cfg config.Redactor) (*ui.Controller, *redactor.Client) {
	client := redactor.New(cfg)

	ctrl := ui.NewController(log, client, redactor.Options{
		Mode:       cfg.Mode,
		Exclusions: cfg.Exclusions,
	})

	return ctrl, client
}

func agentFlags() []cli.Flag {
	var config string

	flags := []cli.Flag{
		configFlag(&config),
		&cli.StringFlag{
			Name:      "watch-dir",
			Aliases:   []string{"w"},
			Usage:     "Set directory to watch for new documents",
			Value:     "input",
			Sources:   cli.NewValueSourceChain(yaml.YAML("app.watch_dir", altsrc.NewStringPtrSourcer(&config))),
			Required:  true,
			Validator: validateDirectory,
		},
		&cli.StringFlag{
			Name:      "output-dir",
			Aliases:   []string{"o"},
			Usage:     "Set directory to save redacted documents to",
			Value:     "output",
			Sources:   cli.NewValueSourceChain(yaml.YAML("app.output_dir", altsrc.NewStringPtrSourcer(&config))),
			Required:  true,
			Validator: validateDirectory,
		},
		&cli.DurationFlag{
			Name:     "scan-interval",
			Aliases:  []string{"s"},
			Value:    3 * time.Second,
			Usage:    "Set directory scan interval",
			Sources:  cli.NewValueSourceChain(yaml.YAML("app.scan_interval", altsrc.NewStringPtrSourcer(&config))),
			Required: true,
		},
	}

	flags = append(flags, redactorFlags(&config)...)
	flags = append(flags, postgresFlags(&config)...)
	flags = append(flags, httpFlags(&config)...)

	return flags
}

func clientFlags() []cli.Flag {
	var config string

	return append([]cli.Flag{configFlag(&config)}, redactorFlags(&config)...)
}

func configFlag(config *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Validator:   validateConfig,
		Usage:       "Load configuration from `FILE`",
		Destination: config,
	}
}

func redactorFlags(config *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Aliases: []string{"u"},
			Usage:   "Set redaction service base URL",
			Value:   "http://localhost:8000",
			Sources: cli.NewValueSourceChain(yaml.YAML("redactor.api_url", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.StringFlag{
			Name:    "static-base",
			Usage:   "Set base URL where produced files are served, defaults to <api-url>/static",
			Sources: cli.NewValueSourceChain(yaml.YAML("redactor.static_base", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.DurationFlag{
			Name:    "request-timeout",
			Usage:   "Set redaction request timeout, zero waits for the service indefinitely",
			Sources: cli.NewValueSourceChain(yaml.YAML("redactor.request_timeout", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.StringFlag{
			Name:      "redaction-mode",
			Usage:     "Set redaction mode, either default or advanced",
			Validator: validateMode,
			Sources:   cli.NewValueSourceChain(yaml.YAML("redactor.mode", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"e"},
			Usage:   "Add a term the service must keep unredacted",
			Sources: cli.NewValueSourceChain(yaml.YAML("redactor.exclusions", altsrc.NewStringPtrSourcer(config))),
		},
	}
}

func postgresFlags(config *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "pg-host",
			Usage:    "Set PostgreSQL host",
			Value:    "localhost",
			Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.host", altsrc.NewStringPtrSourcer(config))),
			Required: true,
		},
		&cli.StringFlag{
			Name:     "pg-port",
			Usage:    "Set PostgreSQL port",
			Value:    "5432",
			Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.port", altsrc.NewStringPtrSourcer(config))),
			Required: true,
		},
		&cli.StringFlag{
			Name:     "pg-username",
			Usage:    "Set PostgreSQL username",
			Sources:  cli.NewValueSourceChain(cli.EnvVar("SECUREPDF_PG_USERNAME"), yaml.YAML("postgresql.username", altsrc.NewStringPtrSourcer(config))),
			Required: true,
		},
		&cli.StringFlag{
			Name:     "pg-password",
			Usage:    "Set PostgreSQL password",
			Sources:  cli.NewValueSourceChain(cli.EnvVar("SECUREPDF_PG_PASSWORD"), yaml.YAML("postgresql.password", altsrc.NewStringPtrSourcer(config))),
			Required: true,
		},
		&cli.StringFlag{
			Name:     "pg-dbname",
			Usage:    "Set PostgreSQL database name",
			Value:    "securepdf",
			Sources:  cli.NewValueSourceChain(yaml.YAML("postgresql.dbname", altsrc.NewStringPtrSourcer(config))),
			Required: true,
		},
	}
}

func httpFlags(config *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "http-host",
			Usage:   "Set HTTP server host",
			Value:   "localhost",
			Sources: cli.NewValueSourceChain(yaml.YAML("http.host", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.StringFlag{
			Name:    "http-port",
			Usage:   "Set HTTP server port",
			Value:   "8080",
			Sources: cli.NewValueSourceChain(yaml.YAML("http.port", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.DurationFlag{
			Name:    "http-idle-timeout",
			Usage:   "Set HTTP server idle timeout",
			Value:   1 * time.Minute,
			Sources: cli.NewValueSourceChain(yaml.YAML("http.idle_timeout", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.DurationFlag{
			Name:    "http-read-timeout",
			Usage:   "Set HTTP server read timeout",
			Value:   15 * time.Second,
			Sources: cli.NewValueSourceChain(yaml.YAML("http.read_timeout", altsrc.NewStringPtrSourcer(config))),
		},
		&cli.DurationFlag{
			Name:    "http-write-timeout",
			Usage:   "Set HTTP server write timeout",
			Value:   15 * time.Second,
			Sources: cli.NewValueSourceChain(yaml.YAML("http.write_timeout", altsrc.NewStringPtrSourcer(config))),
		},
	}
}

func validateMode(mode string) error {
	switch mode {
	case "", "default", "advanced":
		return nil
	default:
		return fmt.Errorf("invalid redaction mode %q, want default or advanced", mode)
	}
}

func validateDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", dir)
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	return nil
}

func validateConfig(config string) error {
	info, err := os.Stat(config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", config)
		}
		return fmt.Errorf("failed to stat %q: %w", config, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", config)
	}

	ext := filepath.Ext(info.Name())
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", config)
	}

	return nil
}
