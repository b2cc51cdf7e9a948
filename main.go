/* main.go
 * The "main" method for running the festival points server. For details see `readme.md`
 * Usage: go run main.go -addr=":8080" -db="festpoints"
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	api "festpoints/api/api"
	"festpoints/api/roster"
	"festpoints/realtime"
	"festpoints/web"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	err := godotenv.Load()

	//Flags
	addrPtr := flag.String("addr", ":8080", "Address for the HTTP server to listen on, e.g. :8080")
	dbPtr := flag.String("db", "festpoints", "MongoDB database name")
	rosterPtr := flag.String("roster", "", "Path to the participant roster CSV, overrides ROSTER_PATH")
	devPtr := flag.String("dev", "false", "Use development logging: takes true or false as argument")

	flag.Parse()

	if err != nil {
		log.Println("No .env file found, using process environment")
	}

	dev, err := convertStrToBool(*devPtr)
	if err != nil {
		log.Fatal("Invalid \"dev\" flag. Should be true or false")
	}

	var logger *zap.Logger
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	rosterPath := *rosterPtr
	if rosterPath == "" {
		rosterPath = os.Getenv("ROSTER_PATH")
	}
	var participants *roster.Cache
	if rosterPath != "" {
		participants, err = roster.NewCache(rosterPath)
		if err != nil {
			logger.Fatal("failed to load participant roster", zap.Error(err))
		}
		logger.Info("roster loaded", zap.String("path", rosterPath), zap.Int("participants", participants.Len()))
	} else {
		logger.Warn("no roster configured, prediction events cannot be created")
	}

	// Connected dashboards get signals over the websocket hub, the optional push
	// endpoint covers clients behind the gateway
	hub := realtime.NewHub(logger)
	notifier := realtime.Multi{
		hub,
		realtime.NewPushClient(os.Getenv("PUSH_ENDPOINT"), os.Getenv("PUSH_KEY"), logger),
	}

	a, err := api.NewAPI(*dbPtr, os.Getenv("MONGO_URI"), participants, notifier, logger)
	if err != nil {
		logger.Fatal("failed to initialize API", zap.Error(err))
	}
	defer func() {
		if err = a.Store.GetClient().Disconnect(context.TODO()); err != nil {
			logger.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	if err := web.Start(web.Config{Addr: *addrPtr, API: a, Hub: hub, Log: logger}); err != nil {
		logger.Fatal("HTTP server stopped", zap.Error(err))
	}
}
