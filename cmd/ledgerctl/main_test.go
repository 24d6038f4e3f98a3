package main

import (
	"bytes"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	grpcdelivery "github.com/Xausdorf/ledger-core/internal/delivery/grpc"
	"github.com/Xausdorf/ledger-core/internal/infrastructure/memory"
	"github.com/Xausdorf/ledger-core/internal/usecase/account"
	"github.com/Xausdorf/ledger-core/internal/usecase/transfer"
)

func startServer(t *testing.T) string {
	t.Helper()

	accounts := memory.NewAccountRepo()
	ledger := memory.NewTransactionRepo()
	srv := grpcdelivery.NewServer(
		grpcdelivery.NewHandler(
			account.NewUseCase(accounts, account.WithIDSequence(account.NewIDSequence())),
			transfer.NewUseCase(accounts, ledger),
		),
		zap.NewNop(),
	)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().String()
}

func runJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(args, &out))

	var v map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	return v
}

func TestLedgerctl_EndToEnd(t *testing.T) {
	addr := startServer(t)

	created := runJSON(t, "-addr", addr, "create", "-currency", "GBP", "-balance", "500")
	assert.EqualValues(t, 1, created["id"])
	runJSON(t, "-addr", addr, "create", "-currency", "GBP", "-balance", "0")

	res := runJSON(t, "-addr", addr, "transfer", "-op", "7", "-from", "1", "-to", "2", "-amount", "125")
	assert.Equal(t, "ok", res["status"])

	res = runJSON(t, "-addr", addr, "transfer", "-op", "7", "-from", "1", "-to", "2", "-amount", "125")
	assert.Equal(t, "already_processed", res["status"])

	acc := runJSON(t, "-addr", addr, "get", "-id", "1")
	assert.EqualValues(t, 375, acc["balance"])
	assert.Equal(t, "3.75", acc["balance_formatted"])

	var out bytes.Buffer
	require.NoError(t, run([]string{"-addr", addr, "legs", "-op", "7"}, &out))
	var legs []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &legs))
	require.Len(t, legs, 2)
	assert.Equal(t, "DEBIT", legs[0]["kind"])
}

func TestLedgerctl_Errors(t *testing.T) {
	addr := startServer(t)

	var out bytes.Buffer
	assert.Error(t, run([]string{"-addr", addr}, &out))
	assert.ErrorContains(t, run([]string{"-addr", addr, "refund"}, &out), `unknown command "refund"`)
	assert.ErrorContains(t, run([]string{"-addr", addr, "get", "-id", "9"}, &out), "Account by id=9 not found")
	assert.ErrorContains(t, run([]string{"-addr", addr, "transfer", "-op", "1", "-from", "1", "-to", "2", "-amount", "5"}, &out),
		"ACCOUNT_FROM_NOT_FOUND")
}
