package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/venlock/payments-engine/internal/domain"
)

var header = []string{"client", "available", "held", "total", "locked"}

func Write(w io.Writer, snapshots []domain.AccountSnapshot) error {
	sorted := make([]domain.AccountSnapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Client < sorted[j].Client })

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report.Write: %w", err)
	}

	for _, s := range sorted {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report.Write: client %d: %w", s.Client, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report.Write: %w", err)
	}
	return nil
}
