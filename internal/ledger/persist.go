package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileForm is the on-disk shape of the ledger.
type fileForm struct {
	UsedIDs  []string `json:"used_ids"`
	WrongIDs []string `json:"wrong_ids"`
	Correct  int      `json:"correct"`
	Answered int      `json:"answered"`
}

// Load reads a ledger file and merges it into the in-memory state: id sets
// union in, counters add. A legacy file holding a bare JSON list of ids is
// accepted and treated as used_ids only. On any decode or validation error
// the in-memory state is left untouched.
func (l *Ledger) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	var f fileForm
	if err := json.Unmarshal(data, &f); err != nil {
		// Legacy form: a bare list of used ids.
		var legacy []string
		if legacyErr := json.Unmarshal(data, &legacy); legacyErr != nil {
			return fmt.Errorf("parse ledger %s: %w", path, err)
		}
		for _, id := range legacy {
			l.used[id] = true
		}
		return nil
	}

	if f.Correct > f.Answered {
		return fmt.Errorf("ledger %s: correct count %d exceeds answered count %d", path, f.Correct, f.Answered)
	}

	for _, id := range f.UsedIDs {
		l.used[id] = true
	}
	for _, id := range f.WrongIDs {
		l.wrong[id] = true
	}
	l.Correct += f.Correct
	l.Answered += f.Answered
	return nil
}

// Save writes the ledger to path atomically (temp file + rename), creating
// parent directories as needed.
func (l *Ledger) Save(path string) error {
	f := fileForm{
		UsedIDs:  l.UsedIDs(),
		WrongIDs: l.WrongIDs(),
		Correct:  l.Correct,
		Answered: l.Answered,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// DefaultPath resolves the ledger file location in priority order:
// PEPREP_LEDGER env var, $XDG_DATA_HOME/peprep/ledger.json, then
// ~/.local/share/peprep/ledger.json.
func DefaultPath() (string, error) {
	if p := os.Getenv("PEPREP_LEDGER"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "peprep", "ledger.json"), nil
}
