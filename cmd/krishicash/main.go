package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	krishicashcmd "github.com/louisbranch/krishicash/internal/cmd/krishicash"
	"github.com/louisbranch/krishicash/internal/platform/config"
)

func main() {
	cfg, err := krishicashcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[KRISHICASH] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := krishicashcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("krishicash: %v", err)
	}
}
