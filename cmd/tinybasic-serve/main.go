package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/gosuda/tinybasic/server"
)

const usage = `usage: tinybasic-serve [-l addr] [-t timeout] [-x idle] [-h]

  -l addr      listen address (default :8080)
  -t timeout   limit for one exec or run request (default 2s)
  -x idle      evict sessions unused for this long (default 30m)
  -h           show this help
`

func parseArgs(args []string) (server.Config, bool, error) {
	cfg := server.DefaultConfig()
	opts, optind, err := getopt.Getopts(args, "l:t:x:h")
	if err != nil {
		return cfg, false, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'l':
			cfg.Addr = opt.Value
		case 't':
			d, err := time.ParseDuration(opt.Value)
			if err != nil || d <= 0 {
				return cfg, false, fmt.Errorf("invalid timeout %q", opt.Value)
			}
			cfg.ExecTimeout = d
		case 'x':
			d, err := time.ParseDuration(opt.Value)
			if err != nil || d <= 0 {
				return cfg, false, fmt.Errorf("invalid idle duration %q", opt.Value)
			}
			cfg.IdleTTL = d
			if d < cfg.SweepInterval {
				cfg.SweepInterval = d
			}
		case 'h':
			return cfg, true, nil
		}
	}
	if optind < len(args) {
		return cfg, false, fmt.Errorf("unexpected argument %q", args[optind])
	}
	return cfg, false, nil
}

func main() {
	cfg, help, err := parseArgs(os.Args)
	if help {
		fmt.Print(usage)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinybasic-serve: %v\n%s", err, usage)
		os.Exit(2)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("init server: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Printf("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("error in ListenAndServe: %v", err)
	}
}
