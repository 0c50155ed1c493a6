package ingest

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venlock/payments-engine/internal/domain"
	"github.com/venlock/payments-engine/internal/testutil"
)

func newReader(t *testing.T, input string) *Reader {
	t.Helper()

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	return r
}

func TestNewReaderHeaderValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "exact header", input: "type,client,tx,amount\n"},
		{name: "spaces and mixed case", input: " Type, Client, TX, Amount\n"},
		{name: "empty input", input: "", wantErr: true},
		{name: "missing column", input: "type,client,tx\n", wantErr: true},
		{name: "extra column", input: "type,client,tx,amount,memo\n", wantErr: true},
		{name: "wrong column name", input: "type,customer,tx,amount\n", wantErr: true},
		{name: "data row instead of header", input: "deposit,1,1,1.0\n", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tc.input))

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNextDecodesRecords(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want domain.Record
	}{
		{name: "deposit", row: "deposit,1,1,1.0", want: testutil.Deposit(1, 1, "1.0")},
		{name: "withdrawal with spaces", row: " withdrawal, 2, 7, 3.1415", want: testutil.Withdrawal(2, 7, "3.1415")},
		{name: "dispute has no amount column", row: "dispute,1,1", want: testutil.Dispute(1, 1)},
		{name: "resolve with empty amount column", row: "resolve,1,1,", want: testutil.Resolve(1, 1)},
		{name: "chargeback ignores stray amount", row: "chargeback,5,9,42.0", want: testutil.Chargeback(5, 9)},
		{name: "deposit with malformed amount decodes to zero", row: "deposit,1,1,abc", want: domain.Record{Kind: domain.KindDeposit, Client: 1, Tx: 1}},
		{name: "deposit with missing amount decodes to zero", row: "deposit,1,1", want: domain.Record{Kind: domain.KindDeposit, Client: 1, Tx: 1}},
		{name: "deposit with too many decimal places decodes to zero", row: "deposit,1,1,1.00001", want: domain.Record{Kind: domain.KindDeposit, Client: 1, Tx: 1}},
		{name: "boundary ids", row: "deposit,65535,4294967295,0.0001", want: testutil.Deposit(65535, 4294967295, "0.0001")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newReader(t, "type,client,tx,amount\n"+tc.row+"\n")

			got, err := r.Next()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			_, err = r.Next()
			require.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestNextStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "unknown record type", row: "transfer,1,1,1.0"},
		{name: "client id not a number", row: "deposit,abc,1,1.0"},
		{name: "client id out of range", row: "deposit,65536,1,1.0"},
		{name: "negative client id", row: "deposit,-1,1,1.0"},
		{name: "tx id not a number", row: "deposit,1,abc,1.0"},
		{name: "tx id out of range", row: "deposit,1,4294967296,1.0"},
		{name: "too few fields", row: "deposit,1"},
		{name: "too many fields", row: "deposit,1,1,1.0,extra"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newReader(t, "type,client,tx,amount\n"+tc.row+"\n")

			_, err := r.Next()
			require.Error(t, err)
			require.NotErrorIs(t, err, io.EOF)
		})
	}
}

func TestNextStreamsAllRows(t *testing.T) {
	input := strings.Join([]string{
		"type, client, tx, amount",
		"deposit, 1, 1, 1.0",
		"deposit, 2, 2, 2.0",
		"withdrawal, 1, 3, 0.5",
		"dispute, 2, 2",
		"resolve, 2, 2",
	}, "\n") + "\n"

	r := newReader(t, input)

	want := []domain.Record{
		testutil.Deposit(1, 1, "1.0"),
		testutil.Deposit(2, 2, "2.0"),
		testutil.Withdrawal(1, 3, "0.5"),
		testutil.Dispute(2, 2),
		testutil.Resolve(2, 2),
	}
	for _, w := range want {
		got, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	_, err := r.Next()
	require.ErrorIs(t, err, io.EOF)
}
