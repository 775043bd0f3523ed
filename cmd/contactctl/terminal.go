package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"portfolio-contact/internal/domain"
)

var (
	successStyle = color.New(color.FgGreen, color.OpBold)
	errorStyle   = color.New(color.FgRed, color.OpBold)
	promptStyle  = color.New(color.FgYellow, color.OpBold)
)

// terminalNotifier reports to a terminal and reads confirmations from in.
type terminalNotifier struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newTerminalNotifier(in io.Reader, out io.Writer, assumeYes bool) *terminalNotifier {
	return &terminalNotifier{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (t *terminalNotifier) Success(title, text string) {
	fmt.Fprintf(t.out, "%s %s\n", successStyle.Render(title), text)
}

func (t *terminalNotifier) Error(title, text string) {
	fmt.Fprintf(t.out, "%s %s\n", errorStyle.Render(title), text)
}

func (t *terminalNotifier) Confirm(ctx context.Context, title, text string) (bool, error) {
	if t.assumeYes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(t.out, "%s %s [y/N] ", promptStyle.Render(title), text)
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func renderMessages(out io.Writer, msgs []domain.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(out, "No messages found.")
		return
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Date", "Name", "Email", "Message"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, m := range msgs {
		table.Append([]string{
			m.ID,
			m.SentAt.Local().Format(time.DateTime),
			m.Name,
			m.Email,
			strings.ReplaceAll(m.Message, "\n", " "),
		})
	}
	table.Render()
}
