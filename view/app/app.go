package app

import (
	"context"
	"net"
	"time"

	"github.com/Astemirdum/library-view/pkg/kafka"
	"github.com/Astemirdum/library-view/pkg/kvstore"
	"github.com/Astemirdum/library-view/pkg/logger"
	"github.com/Astemirdum/library-view/view/config"
	"github.com/Astemirdum/library-view/view/internal/handler"
	"github.com/Astemirdum/library-view/view/internal/server"
	"github.com/Astemirdum/library-view/view/internal/service/api"
	"github.com/Astemirdum/library-view/view/internal/service/profile"
	"github.com/Astemirdum/library-view/view/internal/service/session"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// App holds the client side services shared by the view server and the CLI.
type App struct {
	Log      *zap.Logger
	Store    *session.Store
	Client   *api.Client
	Profiles *profile.Cache
	Sessions *session.Service
	Greeter  *session.Greeter

	unsubscribe func()
}

func New(cfg config.Config, log *zap.Logger, nav session.Navigator) (*App, error) {
	kv, err := kvstore.Open(cfg.SessionFile)
	if err != nil {
		return nil, errors.Wrap(err, "open session file")
	}
	store := session.NewStore(log, kv, nav)
	client, err := api.NewClient(log, cfg.API, store)
	if err != nil {
		return nil, err
	}
	// every 401 ends the session
	client.OnUnauthorized(store.Expire)

	cache := profile.New(log, client, cfg.ProfileCacheTTL)
	a := &App{
		Log:      log,
		Store:    store,
		Client:   client,
		Profiles: cache,
		Sessions: session.NewService(store, client),
		Greeter:  session.NewGreeter(log, store, cache, client, cfg.GreetingDebounce),
	}
	// the cached profile belongs to the session it was fetched for
	a.unsubscribe = store.Subscribe(func(session.Event) {
		cache.Clear()
	})
	return a, nil
}

func (a *App) Close() {
	a.unsubscribe()
	a.Greeter.Close()
}

// Run serves the view API until ctx is done.
func Run(ctx context.Context, cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "view")
	a, err := New(cfg, log, handler.NewLogNavigator(log))
	if err != nil {
		return err
	}
	defer a.Close()

	var producer sarama.SyncProducer
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka producer")
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("producer close", zap.Error(err))
			}
		}()
	}
	enqueuer := handler.NewEnqueuer(producer, cfg.Kafka.Topic)

	h := handler.New(log, a.Client, a.Profiles, a.Sessions, a.Greeter, enqueuer, cfg.ItemsPerPage)
	unsubscribe := a.Store.Subscribe(func(e session.Event) {
		if e != session.LoggedIn {
			h.ResetViews()
		}
	})
	defer unsubscribe()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	go func() {
		if err := a.Store.Watch(watchCtx); err != nil {
			log.Error("session watch", zap.Error(err))
		}
	}()

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Run()
	}()

	select {
	case err := <-srvErr:
		return errors.Wrap(err, "server run")
	case <-ctx.Done():
	}
	log.Debug("Graceful shutdown", zap.Error(ctx.Err()))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
