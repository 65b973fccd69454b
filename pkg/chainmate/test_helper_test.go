package chainmate

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

// fakeProvider is an in-memory BalanceProvider recording how often it was
// called.
type fakeProvider struct {
	tokens []TokenBalance
	err    error
	calls  int
}

func (p *fakeProvider) TokenBalances(ctx context.Context, wallet string) ([]TokenBalance, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.tokens, nil
}

// newTestCore creates a Core backed by the fake provider and the
// deterministic rules agent.
func newTestCore(t *testing.T, provider BalanceProvider) *Core {
	t.Helper()

	core, err := New(Options{
		Config:   Config{ModelProvider: "rules"},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Provider: provider,
	})
	if err != nil {
		t.Fatalf("failed to create test core: %v", err)
	}
	return core
}

// token builds a TokenBalance with the fields the analysis cares about.
func token(symbol, name string, value float64, updated string) TokenBalance {
	return TokenBalance{
		Contract:          "0x0000000000000000000000000000000000000001",
		Amount:            "1000000000000000000",
		Value:             value,
		Name:              name,
		Symbol:            symbol,
		Decimals:          18,
		NetworkID:         "mainnet",
		LastBalanceUpdate: updated,
	}
}

const testWallet = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
