// audit/filelog.go
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLog appends sensitive and failed accesses to a per-day file, a
// durability path independent of the primary store. Writes that fail fall
// back to a best-effort emergency file and are swallowed.
type FileLog struct {
	mu  sync.Mutex
	dir string
}

func NewFileLog(dir string) (*FileLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}
	return &FileLog{dir: dir}, nil
}

// Append writes one record as a JSON line to today's file.
func (f *FileLog) Append(record Record) error {
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	name := filepath.Join(f.dir, fmt.Sprintf("audit-%s.log", record.Timestamp.Format("2006-01-02")))

	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.Write(append(line, '\n'))
	return err
}

// Emergency writes a best-effort line when the normal audit path failed.
// Its own errors are ignored; there is nowhere left to report them.
func (f *FileLog) Emergency(message string) {
	name := filepath.Join(f.dir, "audit-emergency.log")

	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	fmt.Fprintf(file, "%s %s\n", time.Now().Format(time.RFC3339), message)
}
