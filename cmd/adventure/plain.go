package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/text-adventure/pkg/session"
)

var (
	colorPrompt  = color.Style{color.FgCyan, color.OpBold}
	colorHeading = color.Style{color.FgMagenta, color.OpBold}
	colorDenied  = color.Style{color.FgRed, color.OpBold}
	colorWin     = color.Style{color.FgGreen, color.OpBold}
	colorSubtle  = color.Style{color.FgGray}
)

type plainOptions struct {
	color bool
	width int
}

// runPlain drives a session one line at a time until it ends or input closes.
func runPlain(sess *session.Session, in *bufio.Scanner, out io.Writer, opts plainOptions) error {
	color.Enable = opts.color
	if opts.width <= 0 {
		opts.width = 80
	}

	fmt.Fprint(out, renderPlain(sess.Intro(), opts.width))
	for sess.Ongoing() {
		fmt.Fprint(out, "\n"+colorPrompt.Sprint(sess.Prompt()))
		if !in.Scan() {
			return in.Err()
		}
		fmt.Fprint(out, renderPlain(sess.Handle(in.Text()), opts.width))
	}
	return nil
}

// renderPlain wraps output to the terminal width and colours the lines players scan for.
func renderPlain(text string, width int) string {
	lines := strings.Split(wordwrap.String(text, width), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "LOCATION "):
			lines[i] = colorHeading.Sprint(line)
		case line == session.InvalidMessage, strings.HasPrefix(line, "Cannot "), line == "GAME OVER":
			lines[i] = colorDenied.Sprint(line)
		case line == "YOU WIN!!!":
			lines[i] = colorWin.Sprint(line)
		case strings.HasPrefix(line, "- "), line == "========":
			lines[i] = colorSubtle.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}
