package domain

import "time"

// MutationKind names the operation an intent or undo entry belongs to
type MutationKind string

const (
	KindRename MutationKind = "rename"
	KindMove   MutationKind = "move"
	KindDelete MutationKind = "delete"
)

func (k MutationKind) String() string {
	return string(k)
}

// Result codes reported in PerItemResult.Code
const (
	CodeNotFound    = "NOT_FOUND"
	CodeDiskFailure = "DISK_FAILURE"
	CodeSimulated   = "SIMULATED"
	CodeException   = "EXCEPTION"
	CodeConflict    = "CONFLICT"
	CodeCrossDevice = "EXDEV"
	CodeUnknownRoot = "UNKNOWN_ROOT"
	CodeIO          = "IO"
)

// SimulatedFailureMessage is the error text of an injected failure
const SimulatedFailureMessage = "Simulated failure"

// Intent is the planned before/after pair for one item. It is never
// modified once built.
type Intent struct {
	ID          string
	Kind        MutationKind
	Original    Fields
	Next        Fields
	Snapshot    Item // Full record, needed to restore deleted items
	TouchesDisk bool
}

// Inverse swaps Original and Next
func (i Intent) Inverse() Intent {
	i.Original, i.Next = i.Next, i.Original
	return i
}

// ConflictStrategy tells the disk layer what to do when the target exists
type ConflictStrategy string

const (
	ConflictDefault  ConflictStrategy = "" // Use the configured strategy
	ConflictFail     ConflictStrategy = "fail"
	ConflictKeepBoth ConflictStrategy = "keep_both"
)

// DiskOptions are passed through to the disk port
type DiskOptions struct {
	Overwrite        bool             `json:"overwrite,omitempty"`
	ConflictStrategy ConflictStrategy `json:"conflictStrategy,omitempty"`
	PreferredName    string           `json:"preferredName,omitempty"`
}

// DiskResult is what the disk port reports for one call
type DiskResult struct {
	Success      bool
	ResolvedName string // Set when the storage layer picked another name
	Message      string
	Code         string
}

// PerItemResult is the outcome of one item of a mutation
type PerItemResult struct {
	ID           string `json:"id"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	Code         string `json:"code,omitempty"`
	ResolvedName string `json:"resolvedName,omitempty"`
}

// ItemResult is returned by the single-item entry points
type ItemResult struct {
	PerItemResult
	UndoID   string `json:"undoId,omitempty"`
	Deferred bool   `json:"deferred,omitempty"`
}

// BatchResult aggregates the outcome of a batch mutation
type BatchResult struct {
	Total    int             `json:"total"`
	Success  int             `json:"success"`
	Failed   int             `json:"failed"`
	Results  []PerItemResult `json:"results"`
	UndoID   string          `json:"undoId,omitempty"`
	Deferred bool            `json:"deferred,omitempty"`
}

// NewBatchResult counts results into a BatchResult
func NewBatchResult(results []PerItemResult) BatchResult {
	br := BatchResult{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			br.Success++
		} else {
			br.Failed++
		}
	}
	return br
}

// UndoEntry is a registered compensating action. It only holds data; the
// inverse is computed from Intents when the entry is invoked.
type UndoEntry struct {
	UndoID      string        `json:"undoId"`
	Kind        MutationKind  `json:"type"`
	Description string        `json:"description"`
	Timeout     time.Duration `json:"timeout"` // Zero means the entry never expires
	CreatedAt   time.Time     `json:"createdAt"`
	Intents     []Intent      `json:"-"`
}

// ExpiresAt returns when the entry stops being invokable, zero if never
func (e UndoEntry) ExpiresAt() time.Time {
	if e.Timeout <= 0 {
		return time.Time{}
	}
	return e.CreatedAt.Add(e.Timeout)
}

// IDs returns the item ids covered by the entry
func (e UndoEntry) IDs() []string {
	ids := make([]string, len(e.Intents))
	for i, in := range e.Intents {
		ids[i] = in.ID
	}
	return ids
}

// NotificationLevel is the severity shown to the user
type NotificationLevel string

const (
	LevelInfo  NotificationLevel = "info"
	LevelError NotificationLevel = "error"
)

// Notification is a transient message for the presentation layer
type Notification struct {
	Level   NotificationLevel
	Kind    MutationKind
	Message string
	UndoID  string        // Set when an undo affordance should be offered
	Timeout time.Duration // How long the undo stays available, zero if unbounded
}
