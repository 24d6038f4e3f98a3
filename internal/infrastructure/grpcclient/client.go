package grpcclient

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Xausdorf/ledger-core/internal/delivery/grpc/ledgerv1"
)

type Client struct {
	client ledgerv1.LedgerClient
	conn   *grpc.ClientConn
}

// NewClient dials addr lazily. Extra options come after the defaults, so tests
// can pass a bufconn dialer.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(ledgerv1.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial ledger %s: %w", addr, err)
	}
	return &Client{
		client: ledgerv1.NewLedgerClient(conn),
		conn:   conn,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) CreateAccount(ctx context.Context, currency string, balance int64) (int32, error) {
	resp, err := c.client.CreateAccount(ctx, &ledgerv1.CreateAccountRequest{
		Currency: currency,
		Balance:  balance,
	})
	if err != nil {
		return 0, err
	}
	return resp.Id, nil
}

func (c *Client) GetAccount(ctx context.Context, id int32) (*ledgerv1.Account, error) {
	return c.client.GetAccount(ctx, &ledgerv1.GetAccountRequest{Id: id})
}

// Transfer returns the transfer status ("ok" or "already_processed"). Rejections
// come back as status errors whose message is the rejection kind.
func (c *Client) Transfer(ctx context.Context, operationID, from, to int32, amount int64) (string, error) {
	resp, err := c.client.Transfer(ctx, &ledgerv1.TransferRequest{
		OperationId: operationID,
		AccountFrom: from,
		AccountTo:   to,
		Amount:      amount,
	})
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *Client) ListLegs(ctx context.Context, operationID int32) ([]*ledgerv1.Leg, error) {
	resp, err := c.client.ListLegs(ctx, &ledgerv1.ListLegsRequest{OperationId: operationID})
	if err != nil {
		return nil, err
	}
	return resp.Legs, nil
}
