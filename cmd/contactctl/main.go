package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/kelseyhightower/envconfig"

	"portfolio-contact/internal/client"
)

type cliConfig struct {
	APIURL string `envconfig:"CONTACT_API_URL" default:"http://localhost:5000"`
}

const usage = `usage:
  contactctl submit -name NAME -email EMAIL -message TEXT
  contactctl admin list
  contactctl admin delete [-y] ID`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cfg cliConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}
	if err := run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var errUsage = errors.New(usage)

func run(ctx context.Context, cfg cliConfig, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	api, err := client.NewClient(cfg.APIURL)
	if err != nil {
		return err
	}

	switch args[0] {
	case "submit":
		return runSubmit(ctx, api, args[1:], in, out)
	case "admin":
		if len(args) < 2 {
			return errUsage
		}
		return runAdmin(ctx, api, args[1], args[2:], in, out)
	}
	return errUsage
}

func runSubmit(ctx context.Context, api *client.Client, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(out)
	var s client.Submission
	fs.StringVar(&s.Name, "name", "", "sender name")
	fs.StringVar(&s.Email, "email", "", "sender email")
	fs.StringVar(&s.Message, "message", "", "message text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := client.NewContactForm(api, newTerminalNotifier(in, out, false), client.DefaultResetDelay)
	if err != nil {
		return err
	}
	form.SetFields(s)
	return form.Submit(ctx)
}

func runAdmin(ctx context.Context, api *client.Client, cmd string, args []string, in io.Reader, out io.Writer) error {
	if cmd != "list" && cmd != "delete" {
		return errUsage
	}
	fs := flag.NewFlagSet("admin "+cmd, flag.ContinueOnError)
	fs.SetOutput(out)
	assumeYes := fs.Bool("y", false, "delete without asking for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd == "delete" && fs.NArg() != 1 {
		return errUsage
	}

	inbox, err := client.NewInbox(api, newTerminalNotifier(in, out, *assumeYes))
	if err != nil {
		return err
	}
	if err := inbox.Load(ctx); err != nil {
		return err
	}

	if cmd == "list" {
		renderMessages(out, inbox.Messages())
		return nil
	}
	deleted, err := inbox.Delete(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if deleted {
		renderMessages(out, inbox.Messages())
	}
	return nil
}
