package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	benchcmd "github.com/louisbranch/wordlebench/internal/cmd/bench"
)

func main() {
	cfg, err := benchcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[BENCH] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := benchcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
