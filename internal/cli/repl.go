package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/format"
	"github.com/agbru/digitcalc/internal/progress"
	"github.com/agbru/digitcalc/internal/ui"
)

// REPLConfig configures an interactive session.
type REPLConfig struct {
	// DefaultAlgo is the initial strategy. "" and "all" select
	// "accumulate" when it is registered.
	DefaultAlgo string
	// Timeout bounds every calculation.
	Timeout time.Duration
	Options arith.Options
}

// REPL is an interactive session reading two-number commands.
type REPL struct {
	config      REPLConfig
	factory     arith.CalculatorFactory
	currentAlgo string
	in          *bufio.Reader
	out         io.Writer
}

func NewREPL(factory arith.CalculatorFactory, config REPLConfig) *REPL {
	algo := config.DefaultAlgo
	names := factory.List()
	if algo == "" || algo == "all" || !slices.Contains(names, algo) {
		algo = ""
		if slices.Contains(names, "accumulate") {
			algo = "accumulate"
		} else if len(names) > 0 {
			algo = names[0]
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config:      config,
		factory:     factory,
		currentAlgo: algo,
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

func (r *REPL) SetInput(in io.Reader)   { r.in = bufio.NewReader(in) }
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and runs commands until exit or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	for {
		input, ok := r.readLine(ui.ColorGreen() + "digits> " + ui.ColorReset())
		if !ok {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

// readLine prompts and returns the next trimmed line. ok is false at end of
// input.
func (r *REPL) readLine(prompt string) (line string, ok bool) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		}
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (r *REPL) printBanner() {
	c, x := ui.ColorCyan(), ui.ColorReset()
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", c, x)
	fmt.Fprintf(r.out, "%s║%s     %sDigit Chain Calculator - Interactive Mode%s            %s║%s\n", c, x, ui.ColorBold(), x, c, x)
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", c, x)
}

func (r *REPL) printHelp() {
	y, x := ui.ColorYellow(), ui.ColorReset()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), x)
	fmt.Fprintf(r.out, "  %smul <a> <b>%s     - Multiply with the current algorithm\n", y, x)
	fmt.Fprintf(r.out, "  %sadd <a> <b>%s     - Add with the current algorithm\n", y, x)
	fmt.Fprintf(r.out, "  %scompare <a> <b>%s - Multiply with every algorithm and compare\n", y, x)
	fmt.Fprintf(r.out, "  %salgo <name>%s     - Change algorithm (%s)\n", y, x, strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %slist%s            - List available algorithms\n", y, x)
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current configuration\n", y, x)
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", y, x)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", y, x, y, x)
	fmt.Fprintf(r.out, "Operands left out are prompted for. Two bare numbers multiply.\n")
}

// processCommand runs one command line and reports whether to continue.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "mul", "m", "*":
		r.cmdCalc(arith.OpMultiply, args)
	case "add", "+":
		r.cmdCalc(arith.OpAdd, args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if len(parts) == 2 {
			r.cmdCalc(arith.OpMultiply, parts)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// operands parses up to two arguments, prompting for the missing ones.
func (r *REPL) operands(args []string) (a, b digits.BigInt, ok bool) {
	raw := slices.Clone(args)
	names := []string{"a", "b"}
	for i := len(raw); i < len(names); i++ {
		line, more := r.readLine(fmt.Sprintf("  %s> ", names[i]))
		if !more {
			return a, b, false
		}
		raw = append(raw, line)
	}
	if len(raw) != 2 {
		fmt.Fprintf(r.out, "%sExpected two operands, got %d%s\n", ui.ColorRed(), len(raw), ui.ColorReset())
		return a, b, false
	}
	var err error
	if a, err = digits.Parse(raw[0]); err != nil {
		fmt.Fprintf(r.out, "%sOperand a: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return a, b, false
	}
	if b, err = digits.Parse(raw[1]); err != nil {
		fmt.Fprintf(r.out, "%sOperand b: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return a, b, false
	}
	return a, b, true
}

func (r *REPL) cmdCalc(op arith.Operation, args []string) {
	a, b, ok := r.operands(args)
	if !ok {
		return
	}
	calc, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		fmt.Fprintf(r.out, "%sAlgorithm not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Computing %s%d-digit %s %d-digit%s with %s%s%s...\n",
		ui.ColorMagenta(), a.DigitCount(), op.Symbol(), b.DigitCount(), ui.ColorReset(),
		ui.ColorCyan(), calc.Name(), ui.ColorReset())

	progressChan := make(chan progress.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	res, err := calc.Calculate(ctx, progressChan, 0, op, a, b, r.config.Options)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	value := res.Value.String()
	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:        %s%s%s\n", ui.ColorGreen(), formatDuration(duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits:      %s%d%s\n", ui.ColorCyan(), len(value), ui.ColorReset())
	fmt.Fprintf(r.out, "  Peak buffer: %s%s%s\n", ui.ColorCyan(), format.FormatBytes(res.Alloc.Peak), ui.ColorReset())
	if short, truncated := truncateDigits(value); truncated {
		fmt.Fprintf(r.out, "  = %s%s%s (truncated)\n", ui.ColorGreen(), short, ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  = %s%s%s\n", ui.ColorGreen(), value, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdCompare(args []string) {
	a, b, ok := r.operands(args)
	if !ok {
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for a %d-digit × %d-digit product:%s\n", ui.ColorBold(), a.DigitCount(), b.DigitCount(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	var first *digits.BigInt
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		start := time.Now()
		res, err := calc.Calculate(ctx, nil, 0, arith.OpMultiply, a, b, r.config.Options)
		duration := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if first == nil {
			first = &res.Value
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !res.Value.Equal(*first) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %10s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), formatDuration(duration), ui.ColorReset(),
			format.FormatBytes(res.Alloc.Peak), status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdAlgo(args []string) {
	names := strings.Join(r.factory.List(), ", ")
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", names)
		return
	}
	name := strings.ToLower(args[0])
	calc, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", names)
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), calc.Name(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), calc.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	limit := "none"
	if l := r.config.Options.MemoryLimit; l > 0 {
		limit = format.FormatBytes(l)
	}
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:    %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:      %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Memory limit: %s%s%s\n", ui.ColorCyan(), limit, ui.ColorReset())
	fmt.Fprintln(r.out)
}
