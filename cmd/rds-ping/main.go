package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"

	"github.com/markhaywood/rds-tools/internal/config"
	"github.com/markhaywood/rds-tools/internal/probe"
	"github.com/markhaywood/rds-tools/pkg/route"
)

func main() {
	args, err := config.ParseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	logFile, err := config.SetupLogging(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	dst, err := probe.ResolveAddr(args.Destination)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var src netip.Addr
	if args.Source != "" {
		src, err = probe.ResolveAddr(args.Source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := probe.NewConfig(probe.Params{
		Dest:       dst,
		Source:     src,
		PerSocket:  int(args.Count),
		CountSet:   args.CountSet,
		Sockets:    int(args.Sockets),
		SocketsSet: args.SocketsSet,
		TOS:        args.TOS,
		Spin:       args.Spin,
		Rate:       int(args.Rate),
		Transport:  args.Transport,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	slog.Debug("starting RDS probe run",
		"destination", cfg.Dest,
		"sockets", cfg.Sockets,
		"per_socket", cfg.PerSocket,
		"spin", cfg.Spin,
	)

	// Best-effort routing diagnostic; the run itself picks its source
	// address through the transport.
	if path, err := route.Lookup(dst); err == nil {
		slog.Debug("route to destination",
			"source", path.Source,
			"gateway", path.Gateway,
			"interface", path.Interface,
		)
	} else {
		slog.Debug("route lookup failed", "error", err)
	}

	res, runErr := probe.NewRunner(cfg).Run()
	if runErr != nil {
		// Only a send failure leaves partial results worth reporting;
		// every other socket error happens before the first probe.
		var sockErr *probe.SocketError
		if !errors.As(runErr, &sockErr) || sockErr.Op != probe.OpSend {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
			os.Exit(1)
		}
	}

	for i, sr := range res.Spins {
		switch sr.Outcome {
		case probe.SpinQueryFailed:
			fmt.Printf("Output queue query failed on socket %d: %v\n", i, sr.Err)
		default:
			fmt.Printf("Spun for %d counts on socket %d\n", sr.Count, i)
		}
	}

	fmt.Printf("%d sockets took %.3f msec to send and spin for %d packets\n",
		res.Sockets, res.ElapsedMillis(), res.Sent)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
