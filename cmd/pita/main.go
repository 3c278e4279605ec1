// Command pita is a terminal text editor built on the piecetable and
// edit packages. It opens a single file, enters the alternate screen
// and raw mode for the duration, and runs a synchronous read-decode-
// apply-redraw loop — the single entry point named in spec.md §6,
// grounded on pita-term's main.rs in original_source.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/oknozor/pita/edit"
	"github.com/oknozor/pita/edit/tty"
	"github.com/oknozor/pita/highlight"
	"github.com/oknozor/pita/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pita <path>")
		os.Exit(1)
	}
	path := os.Args[1]

	logger := logging.Setup(logFilePath())

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read document", "path", path, "err", err)
		fmt.Fprintf(os.Stderr, "pita: %v\n", err)
		os.Exit(1)
	}

	// Each Screen wraps term's writer in its own bufio.Writer and flushes
	// it on Present; wrapping os.Stdout in another buffer here would
	// leave that outer buffer unflushed and nothing would ever reach the
	// terminal until it overflowed, so hand Screen the raw fd directly.
	term, err := tty.Open(os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("open terminal", "err", err)
		fmt.Fprintf(os.Stderr, "pita: %v\n", err)
		os.Exit(1)
	}

	// Per spec.md §7: a process-global panic hook restores the
	// terminal (raw mode, alternate screen) before the default handler
	// runs. Go has no std::panic::set_hook equivalent, so this is done
	// with the idiomatic recover-in-a-deferred-func pattern instead.
	defer func() {
		term.Close()
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	width, height, err := term.Size()
	if err != nil {
		width, height = 80, 24
	}
	docHeight := height - 1
	if docHeight < 1 {
		docHeight = height
	}

	doc, err := tty.NewScreen(term, 0, 0, width, docHeight)
	if err != nil {
		logger.Error("new doc screen", "err", err)
		term.Close()
		fmt.Fprintf(os.Stderr, "pita: %v\n", err)
		os.Exit(1)
	}
	var logScreen *tty.Screen
	if docHeight < height {
		logScreen, err = tty.NewScreen(term, 0, docHeight, width, height-docHeight)
		if err != nil {
			logger.Error("new log screen", "err", err)
			term.Close()
			fmt.Fprintf(os.Stderr, "pita: %v\n", err)
			os.Exit(1)
		}
	}

	ed := edit.New(edit.SplitGraphemes(string(content)), doc, logScreen, logger)
	hl := highlight.NewChromaAdapter(path)

	redraw := func() {
		rehighlight(ed, hl, logger)
		ed.DrawDoc()
		if logScreen != nil {
			logScreen.Clear(tty.Style{})
			logScreen.Draw(0, 0, fmt.Sprintf("offset: %d", doc.LineOffset()), tty.Style{})
			logScreen.Present()
		}
		doc.Present()
	}

	redraw()

	keys := edit.NewKeyReader(os.Stdin)
	for {
		ev, err := keys.ReadKey()
		if err != nil {
			logger.Info("key stream ended", "err", err)
			return
		}
		cmd, ok := edit.Decode(ev)
		if !ok {
			continue
		}
		if cmd.Kind == edit.Quit {
			return
		}
		if ed.Apply(cmd) {
			redraw()
		}
	}
}

// rehighlight re-tokenises the whole document and rebuilds the
// highlight overlay, clearing it instead of aborting on a tokenizer
// failure (spec.md §7 error kind #3).
func rehighlight(ed *edit.Editor, hl *highlight.ChromaAdapter, logger *slog.Logger) {
	var b strings.Builder
	for _, v := range ed.Buffer().Iter().Collect() {
		b.WriteString(v)
	}
	events, err := hl.Highlight([]byte(b.String()))
	if err != nil {
		logger.Warn("highlight failed, rendering uncoloured", "err", err)
		ed.Overlay().Clear()
		return
	}
	highlight.Rebuild(ed.Overlay(), events)
}

func logFilePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pita", "pita.log")
	}
	return "pita.log"
}
