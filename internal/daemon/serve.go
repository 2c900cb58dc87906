package daemon

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// server is implemented by api.Service and web.Service.
type server interface {
	Listen(addr string) error
	Shutdown() error
	SetAlive(alive bool)
}

type shutdown struct {
	name    string
	addr    string
	seconds int  // /checkalive answers 503 this long before the server stops
	fast    bool // skip the delay
}

// serve runs s until ctx is done or a SIGINT/SIGTERM arrives, then shuts it down gracefully.
func serve(ctx context.Context, s server, opts shutdown) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)

	go func() {
		log.Info().Str("server", opts.name).Str("addr", opts.addr).Msg("listening")

		listenErr <- s.Listen(opts.addr)
	}()

	select {
	case err := <-listenErr:
		return errors.Wrapf(err, "%s server stopped", opts.name)
	case <-ctx.Done():
		log.Info().Str("server", opts.name).Msg("shutdown request")
	}

	// reverse proxies see 503 on /checkalive and take the instance out of rotation
	if !opts.fast {
		log.Info().Msgf(
			"graceful shutdown: return 503 for %d seconds to let the load balancer remove this instance",
			opts.seconds,
		)

		s.SetAlive(false)
		time.Sleep(time.Duration(opts.seconds) * time.Second)
	}

	log.Info().Str("server", opts.name).Msg("stopping http server ...")

	if err := s.Shutdown(); err != nil {
		return errors.Wrapf(err, "shutdown %s server", opts.name)
	}

	if err := <-listenErr; err != nil {
		return errors.Wrapf(err, "%s server stopped", opts.name)
	}

	log.Info().Str("server", opts.name).Msg("http server was stopped ... good bye...")

	return nil
}
