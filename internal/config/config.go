// Package config parses the digitcalc command line. Flags take precedence
// over DIGITCALC_* environment variables, which take precedence over the
// defaults below.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"slices"
	"strings"
	"time"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/digits"
	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/agbru/digitcalc/internal/logging"
	"github.com/agbru/digitcalc/internal/memory"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "DIGITCALC_"

const (
	DefaultOp        = "mul"
	DefaultAlgo      = "all"
	DefaultTimeout   = 5 * time.Minute
	DefaultPort      = "8080"
	DefaultGCMode    = "auto"
	DefaultLogLevel  = "info"
	DefaultMaxDigits = 20_000
)

// AppConfig holds every setting of one digitcalc invocation.
type AppConfig struct {
	// A and B are the operands as typed by the user.
	A, B string
	// Op is "mul" or "add" (see arith.ParseOperation).
	Op string
	// Algo is a registered strategy name or "all" to compare every strategy.
	Algo    string
	Timeout time.Duration
	// MemoryLimit caps the digit buffers of each run, e.g. "64MB". Empty
	// means unlimited.
	MemoryLimit string
	// GCMode is "auto", "aggressive" or "disabled".
	GCMode string

	Verbose   bool
	Details   bool
	ShowValue bool
	Quiet     bool
	NoColor   bool
	// OutputFile, when set, receives the result.
	OutputFile string
	LogLevel   string

	Interactive bool
	TUI         bool
	ServerMode  bool
	Port        string
	// MaxDigits bounds operand length in server mode.
	MaxDigits int
	// TrustedProxies is a comma-separated list of IPs or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers the server believes.
	TrustedProxies string
}

// NeedsOperands reports whether the mode requires -a and -b up front.
func (c AppConfig) NeedsOperands() bool {
	return !c.Interactive && !c.TUI && !c.ServerMode
}

// Operation returns the parsed Op.
func (c AppConfig) Operation() (arith.Operation, error) {
	return arith.ParseOperation(c.Op)
}

// Operands parses A and B.
func (c AppConfig) Operands() (a, b digits.BigInt, err error) {
	if a, err = digits.Parse(c.A); err != nil {
		return a, b, apperrors.WrapError(err, "operand a")
	}
	if b, err = digits.Parse(c.B); err != nil {
		return a, b, apperrors.WrapError(err, "operand b")
	}
	return a, b, nil
}

// ToCalculationOptions converts the configuration into per-run options.
// An unparsable memory limit, rejected by Validate, yields no limit.
func (c AppConfig) ToCalculationOptions() arith.Options {
	limit, _ := memory.ParseMemoryLimit(c.MemoryLimit)
	return arith.Options{MemoryLimit: limit}
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address is a
// single-host prefix.
func (c AppConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(c.TrustedProxies, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Validate checks the configuration against the registered strategies.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if _, err := c.Operation(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := memory.ParseMemoryLimit(c.MemoryLimit); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if !memory.ValidGCMode(c.GCMode) {
		return apperrors.NewConfigError("unrecognized gc mode: '%s'. Valid modes are: auto, aggressive, disabled", c.GCMode)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxDigits <= 0 {
		return apperrors.NewConfigError("max digits must be strictly positive: %d", c.MaxDigits)
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.NeedsOperands() {
		if c.A == "" || c.B == "" {
			return apperrors.NewConfigError("two operands are required: use -a and -b, or pass them as arguments")
		}
		if _, _, err := c.Operands(); err != nil {
			return apperrors.NewConfigError("%v", err)
		}
	}
	return nil
}

// ParseConfig parses args (without the program name). Parse errors and
// usage go to errorWriter. When -a and -b are absent, exactly two
// positional arguments are taken as the operands.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Strategy to use: 'all' (default) or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.StringVar(&config.A, "a", "", "First operand (decimal digits).")
	fs.StringVar(&config.B, "b", "", "Second operand (decimal digits).")
	fs.StringVar(&config.Op, "op", DefaultOp, "Operation: mul or add.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.StringVar(&config.MemoryLimit, "memory-limit", "", "Digit buffer budget per run, e.g. 64MB (empty for none).")
	fs.StringVar(&config.GCMode, "gc", DefaultGCMode, "Garbage collector control: auto, aggressive or disabled.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result (can be very long).")
	fs.BoolVar(&config.Details, "d", false, "Display allocation details and result metadata.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.ShowValue, "calculate", false, "Display the calculated value.")
	fs.BoolVar(&config.ShowValue, "c", false, "Display the calculated value (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: trace, debug, info, warn, error.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the terminal user interface.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Largest operand accepted by the server, in digits.")
	fs.StringVar(&config.TrustedProxies, "trusted-proxies", "", "Comma-separated proxy IPs or CIDRs whose forwarding headers are trusted.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	if config.A == "" && config.B == "" && fs.NArg() == 2 {
		config.A, config.B = fs.Arg(0), fs.Arg(1)
	}

	config.Algo = strings.ToLower(config.Algo)
	config.GCMode = strings.ToLower(config.GCMode)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errInvalidConfig, err)
	}
	return config, nil
}

var errInvalidConfig = errors.New("invalid configuration")
