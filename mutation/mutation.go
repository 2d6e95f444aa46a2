// Package mutation defines the structured DOM-mutation instructions pushed
// to connected clients after a partial render. These are the public API
// contract: the transport layer broadcasts batches over the Hub, and the
// client runtime applies each record to the frame it targets.
package mutation

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Op is the kind of DOM mutation to apply to a target frame.
type Op string

const (
	OpAppend  Op = "append"  // insert HTML after the frame's last child
	OpPrepend Op = "prepend" // insert HTML before the frame's first child
	OpReplace Op = "replace" // replace the frame element itself
	OpUpdate  Op = "update"  // replace the frame's inner content
	OpRemove  Op = "remove"  // remove the frame element
	OpBefore  Op = "before"  // insert HTML before the frame element
	OpAfter   Op = "after"   // insert HTML after the frame element
)

// Record is a single mutation instruction.
type Record struct {
	Op Op `json:"op"`
	// Target is the frame identifier the mutation applies to.
	Target string `json:"target"`
	// HTML is the rendered fragment for inserting ops; empty for remove.
	HTML string `json:"html,omitempty"`
}

// Batch is the atomic broadcast unit: all mutations produced by one render
// pass, applied by clients in order.
type Batch struct {
	ID        string   `json:"id"`
	Seq       uint64   `json:"seq"` // monotonically increasing per hub (gap detection)
	Records   []Record `json:"records"`
	Timestamp int64    `json:"timestamp"` // epoch milliseconds at creation
}

// NewBatch creates a batch with a fresh id and the current timestamp.
func NewBatch(seq uint64, records ...Record) *Batch {
	return &Batch{
		ID:        uuid.NewString(),
		Seq:       seq,
		Records:   records,
		Timestamp: time.Now().UnixMilli(),
	}
}

// MarshalBatch serialises a Batch to JSON.
func MarshalBatch(b *Batch) ([]byte, error) {
	return json.Marshal(b)
}

// UnmarshalBatch deserialises a Batch from JSON.
func UnmarshalBatch(data []byte) (*Batch, error) {
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
