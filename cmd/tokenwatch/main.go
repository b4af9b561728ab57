package main

import (
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/distribution-auth/tokenlife/config"
	"github.com/distribution-auth/tokenlife/token"
)

func main() {
	var (
		configFile string
		debug      bool
	)

	flag.StringVar(&configFile, "config", "config.yaml", "Configuration file")
	flag.BoolVar(&debug, "debug", false, "Debug mode")

	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger, err := cfg.Logger.Build()
	if err != nil {
		panic(err)
	}

	if debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	}

	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Sugar().Fatalf("Invalid configuration: %v", err)
	}

	clock := clockwork.NewRealClock()

	options, err := cfg.TokenOptions(clock)
	if err != nil {
		logger.Sugar().Fatalf("Error reading tokens: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(len(options))

	warnListener := token.NewListener(func(t *token.Token) {
		logger.Warn("token about to expire", tokenFields(t)...)
	})

	expireListener := token.NewListener(func(t *token.Token) {
		logger.Info("token expired", tokenFields(t)...)
		wg.Done()
	})

	tokens := make([]*token.Token, 0, len(options))

	for _, opts := range options {
		t, err := token.New(
			opts,
			token.WithClock(clock),
			token.WithLogger(logger),
			token.WithListener(token.EventWarn, warnListener),
			token.WithListener(token.EventExpire, expireListener),
		)
		if err != nil {
			logger.Sugar().Fatalf("Error creating token: %v", err)
		}

		tokens = append(tokens, t)
	}

	logger.Sugar().Infof("Watching %d tokens", len(tokens))

	done := make(chan struct{})

	go func() {
		wg.Wait()
		close(done)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logger.Info("all tokens expired")

	case sig := <-signals:
		logger.Info("shutting down", zap.Stringer("signal", sig))

		for _, t := range tokens {
			t.Dispose()
		}
	}
}

func tokenFields(t *token.Token) []zap.Field {
	return []zap.Field{
		zap.String("type", string(t.Type())),
		zap.Time("expires", t.Expires()),
		zap.Duration("warnFor", t.WarnFor()),
	}
}
