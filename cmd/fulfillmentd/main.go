package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/storeops/fulfillment/config"
	"github.com/storeops/fulfillment/internal/adminapi"
	"github.com/storeops/fulfillment/internal/app"
	"github.com/storeops/fulfillment/internal/webserver"
)

var (
	cfile  = flag.String("c", "/etc/fulfillmentd.yml", "config file")
	initdb = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application.StartBackgroundJobs(ctx)

	webserver.Init(application)
	adminapi.InitRouter()

	go func() {
		if err := webserver.Instance().Listen(); err != nil {
			zap.S().Errorf("web server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")
}
