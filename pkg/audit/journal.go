package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry is a single journal record. Its hash covers the previous hash,
// the timestamp, and the payload, chaining every entry to the one
// before it.
type Entry struct {
	Seq          uint64 `json:"seq"`
	Timestamp    string `json:"timestamp"`
	PreviousHash string `json:"previous_hash"`
	Payload      string `json:"payload"`
	Hash         string `json:"hash"`
}

// Journal writes a tamper-evident, hash-chained record of events to a
// sink, one JSON document per line.
type Journal struct {
	mu           sync.Mutex
	w            io.Writer
	seq          uint64
	previousHash string
}

// NewJournal creates a Journal anchored to a zero hash.
func NewJournal(w io.Writer) *Journal {
	return &Journal{
		w:            w,
		previousHash: strings.Repeat("0", 64),
	}
}

// Append chains a new entry onto the journal and writes it to the sink.
func (j *Journal) Append(payload string) (*Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.seq++
	entry := &Entry{
		Seq:          j.seq,
		Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
		PreviousHash: j.previousHash,
		Payload:      payload,
	}
	entry.Hash = entryHash(entry.PreviousHash, entry.Timestamp, entry.Payload)

	line, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("Append: %w", err)
	}
	if _, err := j.w.Write(append(line, '\n')); err != nil {
		return nil, fmt.Errorf("Append: %w", err)
	}

	j.previousHash = entry.Hash
	return entry, nil
}

func entryHash(previousHash, timestamp, payload string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", previousHash, timestamp, payload)))
	return hex.EncodeToString(sum[:])
}

// VerifyChain checks that entries form an unbroken hash chain and that
// no entry has been altered.
func VerifyChain(entries []*Entry) bool {
	for i, entry := range entries {
		if i > 0 && entry.PreviousHash != entries[i-1].Hash {
			return false
		}
		if entryHash(entry.PreviousHash, entry.Timestamp, entry.Payload) != entry.Hash {
			return false
		}
	}
	return true
}

// ReadChain decodes a journal previously written by Append, one JSON
// document per line.
func ReadChain(r io.Reader) ([]*Entry, error) {
	var entries []*Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("ReadChain: line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, &entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ReadChain: %w", err)
	}

	return entries, nil
}
