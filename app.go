package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"sportseek/internal/config"
	"sportseek/internal/domain"
	"sportseek/internal/eventbus"
	"sportseek/internal/logging"
	"sportseek/internal/request"
	"sportseek/internal/session"
	"sportseek/internal/transport"
	"sportseek/internal/ui"
)

// errRequestFailed is returned by the headless commands once the failure has
// been printed
var errRequestFailed = errors.New("request failed")

func newApp() *cli.App {
	return &cli.App{
		Name:  "sportseek",
		Usage: "Search crawled sports subreddit posts from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
				Value:   config.DefaultPath(),
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "Backend environment (development, production)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Backend base URL, overrides the environment",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (trace, debug, info, warn, error)",
			},
		},
		Action: tuiCommand,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run one search and print the results",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of results to return",
					},
					&cli.StringFlag{
						Name:    "sort",
						Aliases: []string{"s"},
						Usage:   "Sort method (relevance, score, time)",
					},
					&cli.Float64Flag{
						Name:  "weight-relevance",
						Usage: "Weight of text relevance",
					},
					&cli.Float64Flag{
						Name:  "weight-score",
						Usage: "Weight of the post score",
					},
					&cli.Float64Flag{
						Name:  "weight-time",
						Usage: "Weight of recency",
					},
					&cli.BoolFlag{
						Name:  "pagerank",
						Usage: "Blend PageRank into the ranking",
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Trigger the backend indexer",
				Action: indexCommand,
			},
			{
				Name:   "clear",
				Usage:  "Clear the backend index",
				Action: clearCommand,
			},
		},
	}
}

// runtime is everything one command needs, built from flags and config
type runtime struct {
	cfg       *config.Config
	configSvc config.ConfigService
	bus       eventbus.EventBus
	client    *transport.Client
	log       zerolog.Logger
	logCloser io.Closer
}

// setup loads the configuration, applies flag overrides and builds the
// logger, event bus and transport. Headless commands log to stderr, the TUI
// logs to a file.
func setup(c *cli.Context, headless bool) (*runtime, error) {
	bus := eventbus.New()
	configSvc := config.NewConfigService(c.String("config"), config.WithEventBus(bus))

	cfg, err := configSvc.Load()
	if err != nil {
		bus.Close()
		return nil, err
	}
	if c.IsSet("env") {
		cfg.Environment = strings.ToLower(c.String("env"))
	}
	if c.IsSet("base-url") {
		cfg.API.BaseURL = c.String("base-url")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	} else if headless {
		cfg.Log.Level = "warn"
	}
	if err := cfg.Validate(); err != nil {
		bus.Close()
		return nil, err
	}

	logCfg := logging.Config{Level: cfg.Log.Level}
	if headless {
		logCfg.Console = c.App.ErrWriter
		logCfg.Pretty = true
	} else {
		logCfg.File = cfg.Log.File
		if logCfg.File == "" {
			logCfg.File = filepath.Join(filepath.Dir(configSvc.Path()), "sportseek.log")
		}
	}
	logger, closer, err := logging.New(logCfg)
	if err != nil {
		bus.Close()
		return nil, err
	}
	logging.Init(logger)

	client, err := transport.New(transport.Config{
		BaseURL:           cfg.BaseURL(),
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	})
	if err != nil {
		bus.Close()
		_ = closer.Close()
		return nil, err
	}

	rt := &runtime{
		cfg:       cfg,
		configSvc: configSvc,
		bus:       bus,
		client:    client,
		log:       logger,
		logCloser: closer,
	}
	rt.subscribe()
	bus.Publish(eventbus.ConfigLoadedEvent{
		Path:        configSvc.Path(),
		BaseURL:     cfg.BaseURL(),
		Environment: cfg.Environment,
	})
	return rt, nil
}

// subscribe attaches the audit log and option persistence to the bus
func (rt *runtime) subscribe() {
	log := logging.Component("audit")

	rt.bus.Subscribe(eventbus.EventSearchDispatched, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchDispatchedEvent); ok {
			log.Debug().Uint64(logging.FieldEpoch, ev.Epoch).Str("query", ev.Request.Query).Msg("search dispatched")
		}
	})
	rt.bus.Subscribe(eventbus.EventIndexRequested, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.IndexRequestedEvent); ok {
			log.Debug().Uint64(logging.FieldEpoch, ev.Epoch).Str("op", ev.Op).Msg("index operation requested")
		}
	})
	rt.bus.Subscribe(eventbus.EventResultsChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ResultsChangedEvent); ok {
			log.Debug().Int("results", len(ev.Items)).Msg("results changed")
		}
	})
	rt.bus.Subscribe(eventbus.EventNotification, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.NotificationEvent); ok {
			lvl := zerolog.InfoLevel
			if ev.Severity == domain.SeverityError {
				lvl = zerolog.WarnLevel
			}
			log.WithLevel(lvl).Str("severity", string(ev.Severity)).Msg(ev.Message)
		}
	})
	rt.bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Info().
				Str("config", ev.Path).
				Str("base_url", ev.BaseURL).
				Str("environment", ev.Environment).
				Msg("configuration loaded")
		}
	})
	rt.bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Info().Str("path", ev.Path).Msg("config saved")
		}
	})

	if !rt.cfg.UI.AutosaveOptions {
		return
	}
	rt.bus.Subscribe(eventbus.EventOptionsChanged, func(e eventbus.DomainEvent) {
		ev, ok := e.(eventbus.OptionsChangedEvent)
		if !ok {
			return
		}
		err := rt.configSvc.SaveSearchSettings(request.Settings{
			Count:           ev.Count,
			SortMethod:      ev.SortMethod,
			WeightRelevance: ev.WeightRelevance,
			WeightScore:     ev.WeightScore,
			WeightTime:      ev.WeightTime,
			UsePageRank:     ev.UsePageRank,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to save search options")
		}
	})
}

// Close drains the event bus and releases the log file
func (rt *runtime) Close() {
	rt.bus.Close()
	_ = rt.logCloser.Close()
}

func tuiCommand(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}

	rt, err := setup(c, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, rt.log)

	model := ui.NewModel(ui.Options{
		Transport: rt.client,
		Config:    rt.cfg,
		Bus:       rt.bus,
		Context:   ctx,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	rt.log.Info().Msg("starting UI")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	rt.log.Info().Msg("UI exited normally")
	return nil
}

func searchCommand(c *cli.Context) error {
	rt, err := setup(c, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := rt.cfg.SearchSettings().Options()
	if c.IsSet("count") {
		opts.Count = request.Ptr(c.Int("count"))
	}
	if c.IsSet("sort") {
		sm, err := domain.ParseSortMethod(c.String("sort"))
		if err != nil {
			return err
		}
		opts.SortMethod = &sm
	}
	if c.IsSet("weight-relevance") {
		opts.WeightRelevance = request.Ptr(c.Float64("weight-relevance"))
	}
	if c.IsSet("weight-score") {
		opts.WeightScore = request.Ptr(c.Float64("weight-score"))
	}
	if c.IsSet("weight-time") {
		opts.WeightTime = request.Ptr(c.Float64("weight-time"))
	}
	if c.IsSet("pagerank") {
		opts.UsePageRank = request.Ptr(c.Bool("pagerank"))
	}

	query := strings.Join(c.Args().Slice(), " ")
	p := newPrinter(c.App.Writer, c.App.ErrWriter)
	p.query = strings.TrimSpace(query)
	s := rt.newSession(c, p)

	task, err := s.SubmitSearch(query, opts)
	if err != nil {
		return errRequestFailed
	}
	return runInline(s, task)
}

func indexCommand(c *cli.Context) error {
	rt, err := setup(c, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	s := rt.newSession(c, newPrinter(c.App.Writer, c.App.ErrWriter))
	return runInline(s, s.TriggerIndex())
}

func clearCommand(c *cli.Context) error {
	rt, err := setup(c, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	s := rt.newSession(c, newPrinter(c.App.Writer, c.App.ErrWriter))
	return runInline(s, s.ClearIndex())
}

func (rt *runtime) newSession(c *cli.Context, p *printer) *session.Session {
	return session.New(rt.client, p, p,
		session.WithEventBus(rt.bus),
		session.WithContext(logging.WithLogger(c.Context, rt.log)),
	)
}

// runInline performs task on the calling goroutine; there is no event loop
// to hand it to
func runInline(s *session.Session, task session.Task) error {
	s.Apply(task())
	if s.Phase() == session.Failed {
		return errRequestFailed
	}
	return nil
}
