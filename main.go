// Contact CLI - submit and inspect the portfolio contact relay
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/contactclient"
	"github.com/joeblew999/plat-contact/pkg/log"
)

const version = "contact v0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "send":
		sendCmd(os.Args[2:])
	case "health":
		healthCmd(os.Args[2:])
	case "config":
		configCmd(os.Args[2:])
	case "version":
		fmt.Println(version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Contact - Portfolio contact relay CLI

Usage:
  contact <command> [options]

Commands:
  send       Submit a contact message to the relay
  health     Show relay liveness and whether email is configured
  config     Show the relay email configuration (local callers in production)
  version    Show version
  help       Show this help

Examples:
  contact send -name="Ada" -email=ada@example.com -message="Hello"
  echo "Hello" | contact send -name="Ada" -email=ada@example.com
  contact health -url=https://portfolio.example.com

Environment Variables:
  CONTACT_BACKEND_URL  Relay origin (default: http://localhost:3000)
  CONTACT_PATH         Relay endpoint path (default: /api/contact)
  CONTACT_TIMEOUT      Request timeout (default: 15s)
  CONTACT_LOG_LEVEL    debug, info, warn or error (default: info)`)
}

// terminalForm drives a submission from flags and prints notices.
type terminalForm struct {
	values contact.Submission
	out    io.Writer
}

func (f *terminalForm) Values() contact.Submission {
	return f.values
}

func (f *terminalForm) Lock() func() {
	fmt.Fprint(f.out, "Sending... ")
	return func() {
		fmt.Fprintln(f.out)
	}
}

func (f *terminalForm) Notify(n contactclient.Notice) {
	switch n.Kind {
	case contactclient.KindSent:
		fmt.Fprintf(f.out, "✓ %s (%s)", n.Text, n.MessageID)
	case contactclient.KindInvalid, contactclient.KindBusy:
		fmt.Fprintf(f.out, "%s\n", n.Text)
	default:
		fmt.Fprintf(f.out, "✗ %s", n.Text)
	}
}

func (f *terminalForm) Reset() {
	f.values = contact.Submission{}
}

func sendCmd(args []string) {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	url := fs.String("url", "", "Relay origin (overrides CONTACT_BACKEND_URL)")
	name := fs.String("name", "", "Your name")
	email := fs.String("email", "", "Your email address")
	subject := fs.String("subject", "", "Subject (optional)")
	message := fs.String("message", "", "Message (read from stdin when empty)")
	fs.Parse(args)

	body := *message
	if body == "" {
		if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			body = readAll(os.Stdin)
		}
	}

	form := &terminalForm{
		values: contact.Submission{
			Name:    *name,
			Email:   *email,
			Subject: *subject,
			Message: body,
		},
		out: os.Stdout,
	}

	n := newClient(*url).Submit(context.Background(), form)
	if n.Kind != contactclient.KindSent {
		log.Debug("contact not sent", "kind", n.Kind.String(), "status", n.Status)
		os.Exit(1)
	}
}

func healthCmd(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	url := fs.String("url", "", "Relay origin (overrides CONTACT_BACKEND_URL)")
	fs.Parse(args)

	h, err := newClient(*url).Health(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ok: %t\n", h.Ok)
	fmt.Printf("emailConfigured: %t\n", h.EmailConfigured)
	if !h.EmailConfigured {
		os.Exit(1)
	}
}

func configCmd(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	url := fs.String("url", "", "Relay origin (overrides CONTACT_BACKEND_URL)")
	fs.Parse(args)

	c, err := newClient(*url).EmailConfig(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(c, "", "  ")
	fmt.Println(string(out))
}

func newClient(url string) *contactclient.Client {
	var opts []contactclient.Option
	if url != "" {
		opts = append(opts, contactclient.WithBaseURL(url))
	}
	return contactclient.New(opts...)
}

func readAll(r io.Reader) string {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
