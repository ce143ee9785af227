package audit

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/consolevik/TerraLend/internal/domain/port"
)

// HashChainLog implements port.AuditLog as an append-only JSON-lines file.
// Each line carries the SHA-256 of the previous line's hash plus its own
// payload, so any retroactive edit breaks the chain.
type HashChainLog struct {
	mu       sync.Mutex
	path     string
	prevHash string
}

type chainedEntry struct {
	port.AuditEntry
	PrevHash string `json:"prev_hash"`
	Hash     string `json:"hash"`
}

// genesisHash seeds the chain for the first entry of a fresh log file.
const genesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// NewHashChainLog opens (or creates) the audit log at path and restores the
// chain head from the last line.
func NewHashChainLog(path string) (*HashChainLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}

	l := &HashChainLog{path: path, prevHash: genesisHash}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry chainedEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("corrupt audit log line: %w", err)
		}
		l.prevHash = entry.Hash
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return l, nil
}

// Append writes one entry to the end of the chain.
func (l *HashChainLog) Append(_ context.Context, entry port.AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	chained := chainedEntry{AuditEntry: entry, PrevHash: l.prevHash}
	chained.Hash = entryHash(chained)

	line, err := json.Marshal(chained)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	l.prevHash = chained.Hash
	return nil
}

// Verify walks the whole file and reports the first broken link, or nil when
// the chain is intact.
func (l *HashChainLog) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	prev := genesisHash
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		var entry chainedEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return fmt.Errorf("corrupt audit log line %d: %w", lineNo, err)
		}
		if entry.PrevHash != prev {
			return fmt.Errorf("audit chain broken at line %d", lineNo)
		}
		want := entry.Hash
		entry.Hash = ""
		if entryHash(entry) != want {
			return fmt.Errorf("audit entry tampered at line %d", lineNo)
		}
		prev = want
	}
	return scanner.Err()
}

// entryHash hashes the entry with its Hash field zeroed.
func entryHash(entry chainedEntry) string {
	entry.Hash = ""
	payload, _ := json.Marshal(entry)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
