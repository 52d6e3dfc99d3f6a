package main

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Copier exports text once. Copy returns when the text is delivered, fails
// or ctx is done.
type Copier interface {
	Copy(ctx context.Context, text string) error
}

// systemCopier writes to the OS clipboard. Without one (no xclip, xsel or
// wl-copy on linux) it sends an OSC 52 sequence to term and, if echo is
// set, prints the text there for manual selection.
type systemCopier struct {
	term io.Writer
	echo bool
}

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	writeClipboard       = clipboard.WriteAll
)

func (c *systemCopier) Copy(ctx context.Context, text string) error {
	if clipboardUnsupported() {
		return c.fallback(text)
	}

	done := make(chan error, 1)
	go func() {
		done <- writeClipboard(text)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to write clipboard: %w", err)
		}
		return nil
	}
}

func (c *systemCopier) fallback(text string) error {
	if _, err := osc52.New(text).WriteTo(c.term); err != nil {
		return fmt.Errorf("failed to write osc52 sequence: %w", err)
	}
	if c.echo {
		if _, err := fmt.Fprintf(c.term, "\n%s\n", text); err != nil {
			return fmt.Errorf("failed to print text: %w", err)
		}
	}
	return nil
}
