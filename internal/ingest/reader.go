package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/venlock/payments-engine/internal/domain"
)

var expectedHeader = []string{"type", "client", "tx", "amount"}

type Reader struct {
	csv *csv.Reader
	row int
}

func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("ingest.NewReader: empty input")
		}
		return nil, fmt.Errorf("ingest.NewReader: read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, fmt.Errorf("ingest.NewReader: %w", err)
	}

	return &Reader{csv: cr, row: 1}, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("validateHeader: want %d columns, got %d", len(expectedHeader), len(header))
	}
	for i, want := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("validateHeader: column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func (r *Reader) Next() (domain.Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Record{}, io.EOF
		}
		return domain.Record{}, fmt.Errorf("ingest.Next: %w", err)
	}
	r.row++

	if len(fields) != 3 && len(fields) != 4 {
		return domain.Record{}, fmt.Errorf("ingest.Next: row %d: want 3 or 4 fields, got %d", r.row, len(fields))
	}

	kind, err := domain.ParseKind(strings.TrimSpace(fields[0]))
	if err != nil {
		return domain.Record{}, fmt.Errorf("ingest.Next: row %d: %w", r.row, err)
	}

	client, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return domain.Record{}, fmt.Errorf("ingest.Next: row %d: client id %q: %w", r.row, fields[1], err)
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return domain.Record{}, fmt.Errorf("ingest.Next: row %d: tx id %q: %w", r.row, fields[2], err)
	}

	rec := domain.Record{
		Kind:   kind,
		Client: uint16(client),
		Tx:     uint32(tx),
	}

	// A bad amount is not structural: the record still decodes with a
	// zero amount and the processor rejects it. Amounts on dispute,
	// resolve, and chargeback rows are ignored.
	if kind.HasAmount() && len(fields) == 4 {
		if amount, err := domain.ParseAmount(strings.TrimSpace(fields[3])); err == nil {
			rec.Amount = amount
		}
	}

	return rec, nil
}
