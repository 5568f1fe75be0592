package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df-mc/gauntlet/course"
	"github.com/df-mc/gauntlet/course/console"
)

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	uc, err := course.LoadConfig("config.toml")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := uc.Logger(os.Stderr)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	slog.SetDefault(log)

	conf, err := uc.Config(log)
	if err != nil {
		return err
	}
	c := conf.New()
	defer func() {
		if err := c.Close(); err != nil {
			log.Error(err.Error())
		}
	}()

	if _, err := c.Reset(time.Now()); err != nil {
		log.Error("Storing today's level failed.", "err", err)
	}
	if !uc.Console.Enabled {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	go func() {
		console.New(c, log).Run(ctx)
		close(done)
	}()
	// Run blocks on reading stdin, so a signal does not wait for it.
	select {
	case <-ctx.Done():
	case <-done:
	}
	return nil
}
