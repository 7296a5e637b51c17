package suggestdiff

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Comment is a suggestion comment attached to a block.
type Comment struct {
	ID           string    `json:"id"`
	BlockID      string    `json:"blockId"`
	OriginalText string    `json:"originalText"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionState is the persisted suggestion-session state for one
// document. A nil SnapshotOriginalBlocks means no suggestion session is
// active, in which case the engine produces empty diff and decoration
// sets.
type SessionState struct {
	Comments               []Comment `json:"comments"`
	SnapshotOriginalBlocks []Block   `json:"snapshotOriginalBlocks,omitempty"`
	SnapshotOriginalText   *string   `json:"snapshotOriginalText,omitempty"`
	PendingText            *string   `json:"pendingText,omitempty"`
}

// Active reports whether a suggestion session is in progress.
func (s *SessionState) Active() bool {
	return s != nil && s.SnapshotOriginalBlocks != nil
}

// Store persists suggestion-session state keyed by document identity.
// Load returns (nil, nil) when no state exists for the document.
type Store interface {
	Load(docID string) (*SessionState, error)
	Save(docID string, state *SessionState) error
	Delete(docID string) error
}

// FileStore persists session state as one JSON file per document under a
// directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(docID string) (string, error) {
	if docID == "" || strings.ContainsAny(docID, `/\`) {
		return "", fmt.Errorf("invalid document id %q", docID)
	}
	return filepath.Join(fs.dir, docID+".json"), nil
}

// Load reads the persisted state for a document, or (nil, nil) if none
// exists.
func (fs *FileStore) Load(docID string) (*SessionState, error) {
	path, err := fs.path(docID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &state, nil
}

// Save writes the state for a document. The write goes to a temporary
// file first and is renamed into place, so a crash never leaves a
// half-written state behind.
func (fs *FileStore) Save(docID string, state *SessionState) error {
	path, err := fs.path(docID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// Delete removes the persisted state for a document. Deleting absent
// state is not an error.
func (fs *FileStore) Delete(docID string) error {
	path, err := fs.path(docID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete session state: %w", err)
	}
	return nil
}

// Session manages the suggest-mode lifecycle for one document: entering
// and leaving the mode, bulk accept/reject, comments, and recomputation
// of the diff overlay. All state lives in the Store; the Session itself
// holds no diff state between calls, so every recompute carries its full
// payload.
//
// Mode transitions persist their snapshot write before returning, so a
// transition acts as a checkpoint: edits made after it belong to the new
// suggestion window.
type Session struct {
	docID  string
	store  Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewSession returns a session manager for one document.
func NewSession(docID string, store Store, logger zerolog.Logger) *Session {
	return &Session{
		docID:  docID,
		store:  store,
		logger: logger.With().Str("component", "SuggestSession").Str("doc", docID).Logger(),
		now:    time.Now,
	}
}

// Enter begins a suggestion session by snapshotting the document's
// blocks and serialized text. If a session is already active the
// existing snapshot is kept so the suggestion window is not reset.
func (s *Session) Enter(blocks []Block, text string) error {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return err
	}
	if state.Active() {
		s.logger.Debug().Msg("suggestion session already active, keeping snapshot")
		return nil
	}
	if state == nil {
		state = &SessionState{}
	}
	snapshot := make([]Block, len(blocks))
	copy(snapshot, blocks)
	state.SnapshotOriginalBlocks = snapshot
	state.SnapshotOriginalText = &text
	state.PendingText = nil
	if err := s.store.Save(s.docID, state); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist snapshot")
		return err
	}
	s.logger.Info().Int("blocks", len(blocks)).Msg("entered suggest mode")
	return nil
}

// Active reports whether a suggestion session is in progress.
func (s *Session) Active() (bool, error) {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return false, err
	}
	return state.Active(), nil
}

// SetPendingText records the serialized form of the live document with
// its pending suggestions, for hosts that persist text between reloads.
func (s *Session) SetPendingText(text string) error {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return err
	}
	if !state.Active() {
		return nil
	}
	state.PendingText = &text
	return s.store.Save(s.docID, state)
}

// AcceptAll accepts every pending suggestion: the live document becomes
// the truth and the snapshot is discarded. Comments are kept.
func (s *Session) AcceptAll() error {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return err
	}
	if !state.Active() {
		return nil
	}
	state.SnapshotOriginalBlocks = nil
	state.SnapshotOriginalText = nil
	state.PendingText = nil
	if err := s.store.Save(s.docID, state); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist accept")
		return err
	}
	s.logger.Info().Msg("accepted all suggestions")
	return nil
}

// RejectAll rejects every pending suggestion. It returns the snapshot
// blocks and serialized text for the host to restore, then discards the
// session state. Comments are kept.
func (s *Session) RejectAll() ([]Block, string, error) {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return nil, "", err
	}
	if !state.Active() {
		return nil, "", nil
	}
	blocks := state.SnapshotOriginalBlocks
	text := ""
	if state.SnapshotOriginalText != nil {
		text = *state.SnapshotOriginalText
	}
	state.SnapshotOriginalBlocks = nil
	state.SnapshotOriginalText = nil
	state.PendingText = nil
	if err := s.store.Save(s.docID, state); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist reject")
		return nil, "", err
	}
	s.logger.Info().Int("blocks", len(blocks)).Msg("rejected all suggestions")
	return blocks, text, nil
}

// Exit leaves suggest mode, discarding the snapshot without restoring
// it. Comments are kept.
func (s *Session) Exit() error {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return err
	}
	if !state.Active() {
		return nil
	}
	state.SnapshotOriginalBlocks = nil
	state.SnapshotOriginalText = nil
	state.PendingText = nil
	if err := s.store.Save(s.docID, state); err != nil {
		return err
	}
	s.logger.Info().Msg("exited suggest mode")
	return nil
}

// AddComment attaches a suggestion comment to a block and persists it.
func (s *Session) AddComment(blockID, originalText, comment string) (Comment, error) {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return Comment{}, err
	}
	if state == nil {
		state = &SessionState{}
	}
	createdAt := s.now()
	c := Comment{
		ID:           fmt.Sprintf("comment-%d", createdAt.UnixNano()),
		BlockID:      blockID,
		OriginalText: originalText,
		Comment:      comment,
		CreatedAt:    createdAt,
	}
	state.Comments = append(state.Comments, c)
	if err := s.store.Save(s.docID, state); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// Comments returns the persisted comments for the document.
func (s *Session) Comments() ([]Comment, error) {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	return state.Comments, nil
}

// Recompute rebuilds the diff and decoration sets against the current
// document. This serves both ordinary document-change signals and the
// explicit recompute trigger hosts use to force a rebuild (for example
// when toggling visibility) without a structural change.
//
// Without an active session there is nothing to diff and both results
// are empty; store failures surface to the caller, never as a partial
// overlay.
func (s *Session) Recompute(current []Block, live []LiveBlock, enabled bool) ([]BlockDiff, []Decoration, error) {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return nil, nil, err
	}
	if !state.Active() {
		return nil, nil, nil
	}
	diffs, decorations := BuildDocumentDecorations(state.SnapshotOriginalBlocks, current, live, enabled)
	return diffs, decorations, nil
}

// PreviewText diffs the snapshot's serialized text against the pending
// text. It returns nil when either side is absent.
func (s *Session) PreviewText() ([]TextSpan, error) {
	state, err := s.store.Load(s.docID)
	if err != nil {
		return nil, err
	}
	if state == nil || state.SnapshotOriginalText == nil || state.PendingText == nil {
		return nil, nil
	}
	return DiffTextPreview(*state.SnapshotOriginalText, *state.PendingText), nil
}
