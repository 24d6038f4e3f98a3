package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Xausdorf/ledger-core/internal/infrastructure/grpcclient"
)

const usage = `usage: ledgerctl [-addr host:port] <command> [flags]

commands:
  create   -currency CODE -balance N
  get      -id N
  transfer -op N -from N -to N -amount N
  legs     -op N
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	root := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)
	addr := root.String("addr", envOr("LEDGER_GRPC_ADDR", "localhost:50051"), "ledger gRPC address")
	timeout := root.Duration("timeout", 5*time.Second, "request timeout")
	root.Usage = func() { fmt.Fprint(root.Output(), usage) }
	if err := root.Parse(args); err != nil {
		return err
	}
	if root.NArg() == 0 {
		root.Usage()
		return fmt.Errorf("missing command")
	}

	client, err := grpcclient.NewClient(*addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cmd, cmdArgs := root.Arg(0), root.Args()[1:]
	switch cmd {
	case "create":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		currency := fs.String("currency", "", "ISO 4217 currency code")
		balance := fs.Int64("balance", 0, "opening balance in minor units")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		id, err := client.CreateAccount(ctx, *currency, *balance)
		if err != nil {
			return err
		}
		return printJSON(out, map[string]int32{"id": id})

	case "get":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		id := fs.Int("id", 0, "account id")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		acc, err := client.GetAccount(ctx, int32(*id))
		if err != nil {
			return err
		}
		return printJSON(out, acc)

	case "transfer":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		op := fs.Int("op", 0, "operation id")
		from := fs.Int("from", 0, "source account id")
		to := fs.Int("to", 0, "destination account id")
		amount := fs.Int64("amount", 0, "amount in minor units")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		status, err := client.Transfer(ctx, int32(*op), int32(*from), int32(*to), *amount)
		if err != nil {
			return err
		}
		return printJSON(out, map[string]string{"status": status})

	case "legs":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		op := fs.Int("op", 0, "operation id")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		legs, err := client.ListLegs(ctx, int32(*op))
		if err != nil {
			return err
		}
		return printJSON(out, legs)

	default:
		root.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
