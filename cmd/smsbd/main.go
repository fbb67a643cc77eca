// Command smsbd is a small CLI for the BulkSMSBD gateway: check the
// account balance, send test messages, and inspect recent send
// history.
//
// Configuration comes from BULKSMS_* environment variables, optionally
// loaded from a .env file. Set BULKSMS_POSTGRES_DSN or
// BULKSMS_REDIS_ADDR to persist send history.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/prilive-com/gobulksms"
	"github.com/prilive-com/gobulksms/history"
	"github.com/prilive-com/gobulksms/history/gormstore"
	"github.com/prilive-com/gobulksms/history/redisstore"
	"github.com/prilive-com/gobulksms/sms"
)

const usage = `Usage: smsbd <command> [flags]

Commands:
  balance              show the account balance
  send                 send one message to one or more recipients
  bulk                 send distinct messages from a file of "number:message" lines
  otp                  send a one-time password
  test                 check gateway connectivity and credentials
  history              show recent send history

Run "smsbd <command> -h" for command flags.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if os.Getenv("BULKSMS_LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	app := &app{logger: logger}

	var err error
	switch os.Args[1] {
	case "balance":
		err = app.balance(ctx, os.Args[2:])
	case "send":
		err = app.send(ctx, os.Args[2:])
	case "bulk":
		err = app.bulk(ctx, os.Args[2:])
	case "otp":
		err = app.otp(ctx, os.Args[2:])
	case "test":
		err = app.test(ctx, os.Args[2:])
	case "history":
		err = app.history(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "smsbd: unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

type app struct {
	logger *slog.Logger
}

// newClient builds the unified client from the environment, wiring a
// history recorder when persistence is configured.
func (a *app) newClient() (*gobulksms.Client, error) {
	cfg, err := sms.LoadConfig()
	if err != nil {
		return nil, err
	}

	opts := []gobulksms.Option{gobulksms.WithLogger(a.logger)}

	recorder, err := a.openRecorder()
	if err != nil {
		return nil, err
	}
	if recorder != nil {
		opts = append(opts, gobulksms.WithRecorder(recorder))
	}

	return gobulksms.NewFromConfig(*cfg, opts...)
}

// recentReader is satisfied by both history stores.
type recentReader interface {
	history.Recorder
	Recent(ctx context.Context, limit int) ([]*history.Outcome, error)
}

func (a *app) openRecorder() (recentReader, error) {
	if dsn := os.Getenv("BULKSMS_POSTGRES_DSN"); dsn != "" {
		store, err := gormstore.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres history store: %w", err)
		}
		if err := store.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate history store: %w", err)
		}
		return store, nil
	}
	if addr := os.Getenv("BULKSMS_REDIS_ADDR"); addr != "" {
		return redisstore.Open(addr, os.Getenv("BULKSMS_REDIS_PASSWORD"), 0), nil
	}
	return nil, nil
}

func (a *app) balance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	balance, err := client.GetBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%.2f %s\n", balance.Amount, balance.Currency)
	return nil
}

func (a *app) send(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	to := fs.String("to", "", "comma-separated recipient numbers (required)")
	message := fs.String("message", "", "message body (required)")
	sender := fs.String("sender", "", "override the configured sender ID")
	estimate := fs.Bool("estimate", false, "print the cost estimate instead of sending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to == "" || *message == "" {
		fs.Usage()
		return fmt.Errorf("both -to and -message are required")
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	numbers := strings.Split(*to, ",")

	if *estimate {
		est := client.EstimateCost(*message, len(numbers))
		fmt.Printf("%d chars, %d parts x %d recipients = %d SMS, %.2f %s\n",
			est.MessageLength, est.Parts, est.Recipients,
			est.TotalSMS, est.TotalCost, est.Currency)
		return nil
	}

	var opts []gobulksms.SendOption
	if *sender != "" {
		opts = append(opts, gobulksms.WithSenderID(*sender))
	}

	receipt, err := client.SendSMS(ctx, numbers, *message, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("sent to %d recipient(s), code %d: %s\n",
		len(receipt.Recipients), receipt.Code, receipt.Message)
	return nil
}

func (a *app) bulk(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bulk", flag.ExitOnError)
	file := fs.String("file", "", `file with one "number:message" per line (required)`)
	sender := fs.String("sender", "", "override the configured sender ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}

	messages, err := readBulkFile(*file)
	if err != nil {
		return err
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var opts []gobulksms.SendOption
	if *sender != "" {
		opts = append(opts, gobulksms.WithSenderID(*sender))
	}

	receipt, err := client.SendBulkSMS(ctx, messages, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("sent %d message(s), code %d: %s\n",
		len(receipt.Recipients), receipt.Code, receipt.Message)
	return nil
}

func (a *app) otp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("otp", flag.ExitOnError)
	to := fs.String("to", "", "recipient number (required)")
	code := fs.String("code", "", "one-time password, 4 to 8 digits (required)")
	brand := fs.String("brand", "", "brand name shown in the message (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to == "" || *code == "" || *brand == "" {
		fs.Usage()
		return fmt.Errorf("-to, -code, and -brand are required")
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	receipt, err := client.SendOTP(ctx, *to, *code, *brand)
	if err != nil {
		return err
	}
	fmt.Printf("OTP sent, code %d: %s\n", receipt.Code, receipt.Message)
	return nil
}

func (a *app) test(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if !client.TestConnection(ctx) {
		return fmt.Errorf("gateway rejected the configured credentials")
	}
	fmt.Println("gateway connection OK")
	return nil
}

func (a *app) history(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 20, "number of entries to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := a.openRecorder()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no history store configured; set BULKSMS_POSTGRES_DSN or BULKSMS_REDIS_ADDR")
	}

	outcomes, err := store.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		line := fmt.Sprintf("%s  %-6s %-6s code=%-4d to=%s",
			o.CreatedAt.Format(time.RFC3339), o.Kind, o.Status, o.Code,
			strings.Join(o.Recipients, ","))
		if o.Error != "" {
			line += "  error=" + o.Error
		}
		fmt.Println(line)
	}
	return nil
}

func readBulkFile(path string) ([]sms.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var messages []sms.Message
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		number, body, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%s:%d: expected \"number:message\"", path, i+1)
		}
		messages = append(messages, sms.Message{
			To:      strings.TrimSpace(number),
			Message: strings.TrimSpace(body),
		})
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%s: no messages found", path)
	}
	return messages, nil
}
