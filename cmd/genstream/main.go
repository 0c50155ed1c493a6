package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"

	"github.com/venlock/payments-engine/internal/domain"
	"github.com/venlock/payments-engine/internal/logging"
)

type depositRef struct {
	client uint16
	tx     uint32
}

type generator struct {
	nextTx   uint32
	deposits []depositRef
}

func main() {
	logging.Init("genstream", "info", os.Getenv("APP_ENV"))

	rows := 100000
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "usage: %s [rows]\n", os.Args[0])
			os.Exit(2)
		}
		rows = n
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		slog.Error("failed to write header", "error", err)
		os.Exit(1)
	}

	g := &generator{nextTx: 1}
	for i := 0; i < rows; i++ {
		if err := w.Write(g.row()); err != nil {
			slog.Error("failed to write row", "error", err)
			os.Exit(1)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		slog.Error("failed to flush stream", "error", err)
		os.Exit(1)
	}

	slog.Info("stream generated", "rows", rows)
}

func (g *generator) row() []string {
	client := uint16(rand.Intn(50) + 1)
	roll := rand.Intn(100)

	switch {
	case roll < 50 || len(g.deposits) == 0:
		tx := g.nextTx
		g.nextTx++
		g.deposits = append(g.deposits, depositRef{client: client, tx: tx})
		amount := domain.Amount(rand.Int63n(100_000_000) + 1)
		return []string{string(domain.KindDeposit), uitoa(uint64(client)), uitoa(uint64(tx)), amount.String()}
	case roll < 80:
		tx := g.nextTx
		g.nextTx++
		amount := domain.Amount(rand.Int63n(50_000_000) + 1)
		return []string{string(domain.KindWithdrawal), uitoa(uint64(client)), uitoa(uint64(tx)), amount.String()}
	case roll < 90:
		ref := g.deposits[rand.Intn(len(g.deposits))]
		return []string{string(domain.KindDispute), uitoa(uint64(ref.client)), uitoa(uint64(ref.tx)), ""}
	case roll < 97:
		ref := g.deposits[rand.Intn(len(g.deposits))]
		return []string{string(domain.KindResolve), uitoa(uint64(ref.client)), uitoa(uint64(ref.tx)), ""}
	default:
		ref := g.deposits[rand.Intn(len(g.deposits))]
		return []string{string(domain.KindChargeback), uitoa(uint64(ref.client)), uitoa(uint64(ref.tx)), ""}
	}
}

func uitoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
