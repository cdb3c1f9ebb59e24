package main

import (
	"context"
	"time"

	"safemode-go/bus"
	"safemode-go/internal/platform"
	"safemode-go/services/console"
	"safemode-go/services/heartbeat"
	"safemode-go/services/safemode"
	"safemode-go/types"
	"safemode-go/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	cfg := types.DefaultConfig()
	log := logx.New(platform.DefaultLogOutput(), cfg.LogLevel)
	log.Info("boot")

	board := safemode.ESP32S3()
	pins := platform.DefaultPinFactory()
	reg := platform.DefaultPeripherals()
	port := platform.DefaultConsole()

	ctx := context.Background()
	b := bus.New(8)

	safemode.New(cfg, board, pins, reg, log).Start(ctx, b.NewConnection("safemode"))
	console.New(port, cfg.ConsolePoll).Start(ctx, b.NewConnection("console"))
	heartbeat.New(board, pins, cfg, log).Start(ctx, b.NewConnection("heartbeat"))

	select {}
}
