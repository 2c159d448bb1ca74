// Package app assembles the full service: registry storage, access gate,
// inbound mail server and the Telegram front-end.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v4"

	"dropmail/access"
	"dropmail/bot"
	"dropmail/core/buildinfo"
	coreconfig "dropmail/core/config"
	coredatabase "dropmail/core/database"
	"dropmail/core/logger"
	tg "dropmail/core/telegram"
	"dropmail/core/telegram/middleware"
	"dropmail/core/telegram/state"
	"dropmail/inbound"
	"dropmail/registry"

	"github.com/heptiolabs/healthcheck"
)

// Run wires every component and blocks until ctx is cancelled or a
// component fails fatally.
func Run(ctx context.Context, cfg *coreconfig.Config) error {
	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Shutdown() }()

	store, readyCheck, err := buildStore(cfg)
	if err != nil {
		return err
	}

	reg, err := registry.New(ctx, cfg.Mail.Domain, store)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := reg.Close(); cerr != nil {
			logger.REG.Warn("registry close failed",
				slog.String("event", "registry.close"),
				slog.String("err", cerr.Error()),
			)
		}
	}()

	gate := access.NewGate(cfg.Telegram.AdminID, reg)
	states := state.NewMemoryManager()

	svc := bot.NewService(reg, gate, states)
	tgReg := tg.NewRegistry()
	svc.Register(tgReg)

	// The notifier becomes live once the bot is up; until then inbound
	// deliveries fail and are counted as undelivered.
	var notifier lazyNotifier
	mailRouter := inbound.NewRouter(reg, gate, &notifier)
	mailSrv := inbound.NewServer(inbound.ServerOptions{
		Listen:        cfg.Mail.Listen,
		WebhookSecret: cfg.Mail.WebhookSecret,
		Router:        mailRouter,
		ReadyCheck:    readyCheck,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tg.RunTelegram(ctx, tg.RunOptions{
			Config:      cfg,
			Registry:    tgReg,
			Middlewares: botMiddlewares(cfg, gate),
			Routes:      svc.Routes(tgReg),
			OnStart: func(ctx context.Context, rt tg.Runtime) error {
				notifier.set(bot.NewTeleNotifier(rt.Bot))
				notifyAdminStartup(rt.Bot, gate.AdminID(), cfg.Mail.Domain)
				return nil
			},
		})
	})

	g.Go(func() error {
		logger.MAIL.Info("mail webhook listening",
			slog.String("event", "mail.listen"),
			slog.String("addr", cfg.Mail.Listen),
		)
		err := mailSrv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mailSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildStore selects the registry backend from config. The returned check,
// when non-nil, gates the readiness probe.
func buildStore(cfg *coreconfig.Config) (registry.Store, healthcheck.Check, error) {
	switch cfg.Storage.Backend {
	case coreconfig.StorageMemory:
		return registry.NewMemoryStore(), nil, nil

	case coreconfig.StorageFile:
		store, err := registry.NewSnapshotStore(cfg.Storage.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open snapshot store: %w", err)
		}
		return store, nil, nil

	case coreconfig.StoragePostgres:
		if err := coredatabase.RunMigrations(cfg.Database); err != nil {
			return nil, nil, err
		}
		db, err := coredatabase.Connect(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store := registry.NewSQLStore(db)
		check := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(ctx)
		}
		return store, check, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func botMiddlewares(cfg *coreconfig.Config, gate *access.Gate) []tg.Middleware {
	mws := tg.DefaultMiddlewares(cfg, nil)
	denied := middleware.BlockedMiddleware(func(userID int64) bool {
		return !gate.Allowed(userID)
	})
	mws = append(mws, tg.Middleware{
		Name: "blocked",
		Use:  func(next tele.HandlerFunc) tele.HandlerFunc { return denied(next) },
	})
	return mws
}

func notifyAdminStartup(b *tele.Bot, adminID int64, domain string) {
	if adminID == 0 {
		return
	}
	_, err := b.Send(tele.ChatID(adminID),
		fmt.Sprintf("Bot is up (version %s), serving @%s addresses.", buildinfo.Version, domain))
	if err != nil {
		logger.TG.Warn("startup notice failed",
			slog.String("event", "startup.notice"),
			slog.String("err", err.Error()),
		)
	}
}

// lazyNotifier forwards deliveries to the real notifier once the bot has
// started.
type lazyNotifier struct {
	ptr atomic.Pointer[bot.TeleNotifier]
}

func (l *lazyNotifier) set(n *bot.TeleNotifier) {
	l.ptr.Store(n)
}

func (l *lazyNotifier) Notify(ctx context.Context, userID int64, text string) error {
	n := l.ptr.Load()
	if n == nil {
		return errors.New("bot not started yet")
	}
	return n.Notify(ctx, userID, text)
}
