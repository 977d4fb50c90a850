package persist

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/logger"
	"github.com/boozedog/contextcrafter/internal/prompt"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

const (
	// KeySession holds the in-progress questionnaire snapshot.
	KeySession = "context-crafter-questionnaire-state"
	// KeyHistory holds generated prompts, newest first.
	KeyHistory = "context-crafter-generated-prompts"

	keyProbe = "context-crafter-probe"
)

// HistoryLimit is the number of generated prompts kept.
const HistoryLimit = 10

// Records reads and writes the session and history records. Storage
// failures are logged and never returned: a failed read behaves as an
// empty record and a failed write leaves the caller's state authoritative.
type Records struct {
	kv  KV
	log *logger.Logger
}

// NewRecords wraps kv. A nil log discards messages.
func NewRecords(kv KV, log *logger.Logger) *Records {
	if log == nil {
		log = logger.Nop()
	}
	return &Records{kv: kv, log: log.With("component", "persist")}
}

// SaveSession stores the snapshot.
func (r *Records) SaveSession(s workflow.Snapshot) {
	if s.Responses == nil {
		s.Responses = []answer.Answer{}
	}
	r.put(KeySession, s)
}

// LoadSession returns the stored snapshot, if any.
func (r *Records) LoadSession() (workflow.Snapshot, bool) {
	var s workflow.Snapshot
	if !r.get(KeySession, &s) || s.TaskType == "" {
		return workflow.Snapshot{}, false
	}
	return s, true
}

// LoadSessionFor returns the stored snapshot only when it belongs to
// taskType.
func (r *Records) LoadSessionFor(taskType string) (workflow.Snapshot, bool) {
	s, ok := r.LoadSession()
	if !ok || s.TaskType != taskType {
		return workflow.Snapshot{}, false
	}
	return s, true
}

// ClearSession removes the stored snapshot.
func (r *Records) ClearSession() {
	r.remove(KeySession)
}

// AppendPrompt adds g to the front of the history, evicting the oldest
// entries beyond HistoryLimit, and returns the new history.
func (r *Records) AppendPrompt(g prompt.Generated) []prompt.Generated {
	history := append([]prompt.Generated{g}, r.Prompts()...)
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}
	r.put(KeyHistory, history)
	return history
}

// Prompts returns the history, newest first.
func (r *Records) Prompts() []prompt.Generated {
	var history []prompt.Generated
	if !r.get(KeyHistory, &history) {
		return nil
	}
	return history
}

// FindPrompt resolves ref as a record id, an id prefix, or a 1-based
// position in the history.
func (r *Records) FindPrompt(ref string) (prompt.Generated, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return prompt.Generated{}, false
	}
	history := r.Prompts()

	for _, g := range history {
		if g.ID == ref {
			return g, true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(history) {
			return history[n-1], true
		}
		return prompt.Generated{}, false
	}

	var match prompt.Generated
	found := 0
	for _, g := range history {
		if strings.HasPrefix(g.ID, ref) {
			match = g
			found++
		}
	}
	return match, found == 1
}

// ClearPrompts removes the whole history.
func (r *Records) ClearPrompts() {
	r.remove(KeyHistory)
}

// Available reports whether the store accepts writes.
func (r *Records) Available() bool {
	if err := r.kv.Set(keyProbe, []byte(`"probe"`)); err != nil {
		r.log.Warn("store unavailable", "err", err)
		return false
	}
	if err := r.kv.Remove(keyProbe); err != nil {
		r.log.Warn("store unavailable", "err", err)
		return false
	}
	return true
}

func (r *Records) put(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.log.Error("encode record", "key", key, "err", err)
		return
	}
	if err := r.kv.Set(key, data); err != nil {
		r.log.Warn("write record", "key", key, "err", err)
	}
}

func (r *Records) get(key string, v any) bool {
	data, err := r.kv.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		r.log.Warn("read record", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.log.Warn("decode record", "key", key, "err", err)
		return false
	}
	return true
}

func (r *Records) remove(key string) {
	if err := r.kv.Remove(key); err != nil {
		r.log.Warn("remove record", "key", key, "err", err)
	}
}
