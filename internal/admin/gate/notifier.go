package gate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Notifier presents a failure message to the operator.
type Notifier interface {
	Alert(ctx context.Context, message string)
}

// NotifierFunc adapts ordinary functions to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Alert calls f.
func (f NotifierFunc) Alert(ctx context.Context, message string) { f(ctx, message) }

// LogNotifier records alerts as warnings.
type LogNotifier struct {
	Logger *zap.Logger
}

// Alert implements Notifier.
func (n LogNotifier) Alert(_ context.Context, message string) {
	if n.Logger == nil {
		return
	}
	n.Logger.Warn("gate alert", zap.String("alert", message))
}

// WriterNotifier writes each alert on its own line.
type WriterNotifier struct {
	W io.Writer
}

// Alert implements Notifier.
func (n WriterNotifier) Alert(_ context.Context, message string) {
	if n.W == nil {
		return
	}
	fmt.Fprintln(n.W, message)
}

// TerminalNotifier writes alerts to Out and, when In is an interactive
// terminal, blocks until the operator presses Enter. Alerts are shown one at
// a time and share one buffered reader, so input typed ahead is kept for the
// next alert.
type TerminalNotifier struct {
	Out io.Writer
	In  io.Reader
	// Interactive reports whether In is attended. When nil, In counts as
	// interactive only if it is a terminal file.
	Interactive func() bool

	mu     sync.Mutex
	reader *bufio.Reader
}

// NewTerminalNotifier binds the notifier to stderr and stdin.
func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{Out: os.Stderr, In: os.Stdin}
}

// Alert implements Notifier.
func (n *TerminalNotifier) Alert(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := n.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "\n[!] %s\n", message)

	if n.In == nil || !n.interactive() {
		return
	}
	if n.reader == nil {
		n.reader = bufio.NewReader(n.In)
	}
	fmt.Fprint(out, "Press Enter to continue...")
	_, _ = n.reader.ReadString('\n')
}

func (n *TerminalNotifier) interactive() bool {
	if n.Interactive != nil {
		return n.Interactive()
	}
	f, ok := n.In.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
