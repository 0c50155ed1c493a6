package audit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalChainsEntries(t *testing.T) {
	var sink bytes.Buffer
	journal := NewJournal(&sink)

	e1, err := journal.Append("seq=1 kind=deposit client=1 tx=1 outcome=applied")
	require.NoError(t, err)
	e2, err := journal.Append("seq=2 kind=withdrawal client=1 tx=2 outcome=rejected reason=INSUFFICIENT_FUNDS")
	require.NoError(t, err)
	e3, err := journal.Append("seq=3 kind=dispute client=1 tx=1 outcome=applied")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), e1.Seq)
	assert.Equal(t, strings.Repeat("0", 64), e1.PreviousHash)
	assert.Equal(t, e1.Hash, e2.PreviousHash)
	assert.Equal(t, e2.Hash, e3.PreviousHash)

	assert.True(t, VerifyChain([]*Entry{e1, e2, e3}))
}

func TestJournalSinkRoundTrip(t *testing.T) {
	var sink bytes.Buffer
	journal := NewJournal(&sink)

	for _, payload := range []string{"first", "second", "third"} {
		_, err := journal.Append(payload)
		require.NoError(t, err)
	}

	entries, err := ReadChain(&sink)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "first", entries[0].Payload)
	assert.Equal(t, "third", entries[2].Payload)
	assert.True(t, VerifyChain(entries))
}

func TestVerifyChainDetectsTampering(t *testing.T) {
	newChain := func(t *testing.T) []*Entry {
		var sink bytes.Buffer
		journal := NewJournal(&sink)
		var entries []*Entry
		for _, payload := range []string{"one", "two", "three"} {
			e, err := journal.Append(payload)
			require.NoError(t, err)
			entries = append(entries, e)
		}
		return entries
	}

	t.Run("edited payload", func(t *testing.T) {
		entries := newChain(t)
		entries[1].Payload = "two, amended"
		assert.False(t, VerifyChain(entries))
	})

	t.Run("replaced hash", func(t *testing.T) {
		entries := newChain(t)
		entries[1].Hash = strings.Repeat("d", 64)
		assert.False(t, VerifyChain(entries))
	})

	t.Run("broken link", func(t *testing.T) {
		entries := newChain(t)
		entries[2].PreviousHash = strings.Repeat("d", 64)
		assert.False(t, VerifyChain(entries))
	})

	t.Run("dropped entry", func(t *testing.T) {
		entries := newChain(t)
		assert.False(t, VerifyChain([]*Entry{entries[0], entries[2]}))
	})

	t.Run("empty chain is valid", func(t *testing.T) {
		assert.True(t, VerifyChain(nil))
	})
}
