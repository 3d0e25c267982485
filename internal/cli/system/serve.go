package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/config"
	"github.com/julianstephens/engage/internal/constants"
	"github.com/julianstephens/engage/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"127.0.0.1:8787"`
	Seed bool   `help:"Seed the example plan when the store is empty."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if c.Seed {
		if err := ctx.EnsureSeed(); err != nil {
			return err
		}
	}

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	addr := c.Addr
	if cfg.Addr != "" {
		addr = cfg.Addr
	}
	if addr == "" {
		addr = constants.DefaultServerAddr
	}

	srv := server.New(server.Settings{
		Addr:         addr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, ctx.Store)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(runCtx); err != nil {
		return err
	}
	fmt.Printf("Plan API listening on %s\n", srv.Addr())

	<-runCtx.Done()
	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
