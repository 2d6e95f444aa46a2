package mutation

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestBatchJSONRoundTrip(t *testing.T) {
	in := NewBatch(7,
		Record{Op: OpUpdate, Target: "cart-items", HTML: "<li>milk</li>"},
		Record{Op: OpRemove, Target: "item_42"},
	)

	data, err := MarshalBatch(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := UnmarshalBatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n  in:  %+v\n  out: %+v", in, out)
	}
}

func TestRecordRenderStream(t *testing.T) {
	cases := []struct {
		name     string
		record   Record
		expected string
	}{
		{
			name:     "update with fragment",
			record:   Record{Op: OpUpdate, Target: "cart-items", HTML: "<li>milk</li>"},
			expected: `<frame-stream action="update" target="cart-items"><li>milk</li></frame-stream>`,
		},
		{
			name:     "remove has no fragment",
			record:   Record{Op: OpRemove, Target: "item_42"},
			expected: `<frame-stream action="remove" target="item_42"></frame-stream>`,
		},
		{
			name:     "target attribute is escaped",
			record:   Record{Op: OpAppend, Target: `x"><script>`, HTML: "y"},
			expected: `<frame-stream action="append" target="x&#34;&gt;&lt;script&gt;">y</frame-stream>`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.RenderStream(); got != tc.expected {
				t.Errorf("RenderStream() =\n  %s\nwant\n  %s", got, tc.expected)
			}
		})
	}
}

func TestBatchRenderStreamOrder(t *testing.T) {
	b := NewBatch(1,
		Record{Op: OpBefore, Target: "a", HTML: "1"},
		Record{Op: OpAfter, Target: "b", HTML: "2"},
	)
	out := b.RenderStream()
	if strings.Index(out, `target="a"`) > strings.Index(out, `target="b"`) {
		t.Error("batch records were rendered out of order")
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub1 := h.Subscribe(ctx)
	sub2 := h.Subscribe(ctx)
	if h.SubscriberCount() != 2 {
		t.Fatalf("subscriber count = %d, want 2", h.SubscriberCount())
	}

	sent := h.Broadcast(Record{Op: OpUpdate, Target: "cart-items", HTML: "x"})
	if sent.Seq != 1 {
		t.Errorf("first batch seq = %d, want 1", sent.Seq)
	}

	for i, sub := range []<-chan *Batch{sub1, sub2} {
		select {
		case got := <-sub:
			if got.ID != sent.ID {
				t.Errorf("subscriber %d received batch %q, want %q", i, got.ID, sent.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive the batch", i)
		}
	}
}

func TestHubUnsubscribeOnCancel(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())

	sub := h.Subscribe(ctx)
	cancel()

	// The channel is closed once the cancellation is processed.
	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-sub:
			if !open {
				if h.SubscriberCount() != 0 {
					t.Errorf("subscriber count = %d after cancel, want 0", h.SubscriberCount())
				}
				return
			}
		case <-deadline:
			t.Fatal("subscription channel was not closed after cancel")
		}
	}
}

func TestHubSlowSubscriberDrops(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.Subscribe(ctx) // never read

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Broadcast(Record{Op: OpRemove, Target: "x"})
	}
	if h.Dropped() != 5 {
		t.Errorf("dropped = %d, want 5", h.Dropped())
	}
}
