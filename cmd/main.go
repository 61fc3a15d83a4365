package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"server-invest-app/config"
	"server-invest-app/internal/app/asset"
	"server-invest-app/internal/app/chain"
	"server-invest-app/internal/app/relation"
	"server-invest-app/internal/app/service"
	"server-invest-app/internal/db"
)

func main() {
	flag.Parse()
	config.Init()
	db.Init()

	chainCfg := config.Chain
	if chainCfg.DgraphRPC != "" {
		if err := relation.Open(chainCfg.DgraphRPC); err != nil {
			log.Fatalf("connect dgraph: %s", err)
		}
	}
	ledger := asset.NewHTTPLedger(chainCfg.AssetURL, chainCfg.AssetKey)
	chain.Init(ledger, chainCfg.Owner, chainCfg.CompanyWallet)

	go service.RunHttp()
	go service.StatTicker()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be catch, so don't need add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := service.GetHttp().Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	// catching ctx.Done(). timeout of 5 seconds.
	select {
	case <-ctx.Done():
		log.Info("timeout of 5 seconds.")
	}
	log.Info("Server exiting")
}
