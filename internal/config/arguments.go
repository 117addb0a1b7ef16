package config

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/markhaywood/rds-tools/internal/version"
)

type Args struct {
	Destination string
	Source      string // source IP address, empty means infer from routing
	Count       uint   // probes per socket
	CountSet    bool   // whether --count was given explicitly
	Sockets     uint   // socket-group size
	SocketsSet  bool   // whether --sockets was given explicitly
	TOS         uint8
	Spin        bool
	Rate        uint   // probes per second, 0 = unlimited
	Transport   string // "ib", "tcp", or empty for the kernel default

	// Logging
	Log      string // log file path, empty means no log file
	LogLevel string // log level: debug, info, warn, error
}

func ParseArgs() (Args, error) {
	var args Args
	var showVersion bool

	flag.Usage = func() {
		println("rds-ping - RDS reachability and latency probe")
		println()
		println("Sends sequenced zero-payload probes to an RDS node over a group of")
		println("sockets and reports how long the send phase took.")
		println()
		println("Usage:")
		println("  rds-ping [OPTIONS] DESTINATION")
		println()
		println("Examples:")
		println("  rds-ping 192.0.2.1                 # 8 sockets, one probe each")
		println("  rds-ping -c 100 -n 4 192.0.2.1     # 4 sockets, 100 probes each")
		println("  rds-ping -s -Q 32 192.0.2.1        # spin on TIOCOUTQ, TOS 32")
		println()
		println("Options:")
		flag.PrintDefaults()
	}

	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.UintVarP(&args.Count, "count", "c", 1, "Number of probes to send on each socket")
	flag.UintVarP(&args.Sockets, "sockets", "n", 8, "Number of RDS sockets in the probe group (1-32)")
	flag.StringVarP(&args.Source, "source", "I", "", "Source IP address (default: inferred from routing)")
	flag.Uint8VarP(&args.TOS, "tos", "Q", 0, "Type of service tag applied to each socket")
	flag.BoolVarP(&args.Spin, "spin", "s", false, "Busy-poll each socket's output queue until it drains")
	flag.UintVarP(&args.Rate, "rate", "r", 0, "Probes per second (0 = unlimited)")
	flag.StringVarP(&args.Transport, "transport", "t", "", "Pin the RDS transport: ib or tcp (default: kernel choice)")
	flag.StringVarP(&args.Log, "log", "l", "", "Diagnostic log file (empty = no log file)")
	flag.StringVar(&args.LogLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.Parse()

	if showVersion {
		fmt.Println(version.FullVersion())
		os.Exit(0)
	}

	args.CountSet = flag.CommandLine.Changed("count")
	args.SocketsSet = flag.CommandLine.Changed("sockets")
	args.Destination = flag.Arg(0)

	switch {
	case args.Destination == "":
		return args, errors.New("destination is required")
	case flag.NArg() > 1:
		return args, errors.New("exactly one destination is expected")
	case args.SocketsSet && (args.Sockets < 1 || args.Sockets > 32):
		return args, errors.New("number of sockets must be between 1 and 32")
	case args.Count < 1:
		return args, errors.New("count must be at least 1")
	case args.Transport != "" && args.Transport != "ib" && args.Transport != "tcp":
		return args, errors.New("transport must be either 'ib' or 'tcp'")
	}

	return args, nil
}
