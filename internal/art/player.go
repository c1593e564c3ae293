package art

import (
	"context"
	"fmt"
	"io"
	"time"
)

const (
	clearLine = "\033[2K"
	cursorUp  = "\033[%dA"
)

// Play draws sprite in place on a plain terminal, looping loops times at
// fps frames per second. Each frame rewinds the cursor over the previous
// one so the animation does not scroll.
func Play(ctx context.Context, w io.Writer, sprite string, facingLeft bool, loops, fps int) error {
	if loops <= 0 {
		loops = 1
	}
	if fps <= 0 {
		fps = 8
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	n := FrameCount(sprite)
	first := true
	for loop := 0; loop < loops; loop++ {
		for i := 0; i < n; i++ {
			if !first {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}
				if _, err := fmt.Fprintf(w, cursorUp, Rows); err != nil {
					return fmt.Errorf("failed to rewind frame: %w", err)
				}
			}
			first = false

			if err := drawFrame(w, FrameFor(sprite, i, facingLeft)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Static writes the first frame of sprite once.
func Static(w io.Writer, sprite string, facingLeft bool) error {
	return drawFrame(w, FrameFor(sprite, 0, facingLeft))
}

func drawFrame(w io.Writer, f Frame) error {
	for _, row := range f {
		if _, err := fmt.Fprintf(w, "\r%s%s\n", clearLine, row); err != nil {
			return fmt.Errorf("failed to draw frame: %w", err)
		}
	}
	return nil
}
