// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package swiftlog

import "testing"

func TestProducerQueueEnqueuePeekConsume(t *testing.T) {
	q := NewProducerQueue(256, PolicyBlock)
	meta := &Metadata{LoggerName: "test"}

	err := q.Enqueue(LevelInfo, meta, 5, func(payload []byte) {
		copy(payload, []byte("hello"))
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	frame, ok := q.Peek()
	if !ok {
		t.Fatal("Peek returned no frame")
	}
	total, _, level, gotMeta := readHeader(frame)
	if level != LevelInfo {
		t.Fatalf("level = %v, want Info", level)
	}
	if gotMeta != meta {
		t.Fatal("metadata pointer mismatch")
	}
	payload := frame[headerSize:total]
	if string(payload) != "hello" {
		t.Fatalf("payload = %q", payload)
	}
	q.Consume(int(total))

	if _, ok := q.Peek(); ok {
		t.Fatal("Peek should fail on empty queue")
	}
}

func TestProducerQueueDropPolicy(t *testing.T) {
	q := NewProducerQueue(64, PolicyDrop)
	meta := &Metadata{}

	filled := 0
	for i := 0; i < 1000; i++ {
		err := q.Enqueue(LevelInfo, meta, 8, func(payload []byte) {})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		filled++
		if q.Dropped() > 0 {
			break
		}
	}
	if q.Dropped() == 0 {
		t.Fatal("expected some records to be dropped once the ring filled")
	}
}

func TestProducerQueueRejectsOversizedRecord(t *testing.T) {
	q := NewProducerQueue(64, PolicyBlock)
	err := q.Enqueue(LevelInfo, &Metadata{}, 10_000, func(payload []byte) {})
	if err != ErrEncodeOverflow {
		t.Fatalf("got %v, want ErrEncodeOverflow", err)
	}
}

func TestProducerQueueHandlesWrapAcrossManyRecords(t *testing.T) {
	q := NewProducerQueue(128, PolicyBlock)
	meta := &Metadata{}

	for i := 0; i < 5000; i++ {
		msg := []byte("record-body")
		err := q.Enqueue(LevelDebug, meta, len(msg), func(payload []byte) {
			copy(payload, msg)
		})
		if err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
		frame, ok := q.Peek()
		if !ok {
			t.Fatalf("peek %d: no frame", i)
		}
		total, _, _, _ := readHeader(frame)
		got := frame[headerSize:total]
		if string(got) != string(msg) {
			t.Fatalf("record %d: got %q, want %q", i, got, msg)
		}
		q.Consume(int(total))
	}
}
