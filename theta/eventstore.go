/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package theta

import (
	"sync"
	"time"

	"thetadata-go/decode"
	"thetadata-go/enums"
)

// EventStore is the in-memory ring buffer backing a live stream: receiveLoop
// files every decoded StreamEvent here (REQ_RESPONSE acks go to the
// subscription registry instead), and callers read them back with Recent/All.
//
// HOT PATH: Add runs once per frame off the stream socket's read loop and
// must not allocate on the steady-state path; see benchmarks in
// eventstore_benchmark_test.go.
//
// Ring Buffer Layout:
//
//	┌────────────────────────────────────────────────────────────┐
//	│ events[0] │ events[1] │  ...  │ events[maxSize-1]          │
//	└────────────────────────────────────────────────────────────┘
//	      ↑                              ↑
//	     head                    (head+count-1) % maxSize = tail
//	  (oldest)                        (newest)
type EventStore struct {
	mu      sync.RWMutex
	events  []StreamEvent
	head    int
	count   int
	seen    int64
	maxSize int
}

// NewEventStore allocates an EventStore with a fixed-capacity ring buffer.
// The buffer is allocated once and never grows.
func NewEventStore(maxSize int) *EventStore {
	return &EventStore{
		events:  make([]StreamEvent, maxSize),
		maxSize: maxSize,
	}
}

// Add inserts an event into the ring buffer, overwriting the oldest entry
// once the buffer is full. O(1), zero allocations.
func (s *EventStore) Add(ev StreamEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeIdx := (s.head + s.count) % s.maxSize
	s.events[writeIdx] = ev

	if s.count < s.maxSize {
		s.count++
	} else {
		s.head = (s.head + 1) % s.maxSize
	}
	s.seen++
}

// Recent returns up to limit most recent events for the given contract, in
// chronological order (oldest of the selected window first).
func (s *EventStore) Recent(contract string, limit int) []StreamEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.count == 0 || limit <= 0 {
		return nil
	}

	matchCount := 0
	for i := 0; i < s.count && matchCount < limit; i++ {
		idx := (s.head + s.count - 1 - i) % s.maxSize
		if s.events[idx].Contract.String() == contract {
			matchCount++
		}
	}
	if matchCount == 0 {
		return nil
	}

	out := make([]StreamEvent, matchCount)
	resultIdx := matchCount - 1
	for i := 0; i < s.count && resultIdx >= 0; i++ {
		idx := (s.head + s.count - 1 - i) % s.maxSize
		if s.events[idx].Contract.String() == contract {
			out[resultIdx] = s.events[idx]
			resultIdx--
		}
	}
	return out
}

// All returns a defensive copy of every event currently buffered, oldest first.
func (s *EventStore) All() []StreamEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.count == 0 {
		return nil
	}
	out := make([]StreamEvent, s.count)
	for i := 0; i < s.count; i++ {
		out[i] = s.events[(s.head+i)%s.maxSize]
	}
	return out
}

// Seen returns the total number of events ever added, including those since
// evicted from the ring.
func (s *EventStore) Seen() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen
}

// SubAckState is the lifecycle state of a single stream subscription request,
// tracked from the moment it is sent until the Terminal confirms or rejects it.
type SubAckState int

const (
	SubPending SubAckState = iota
	SubSubscribed
	SubInvalidPerms
	SubMaxStreamsReached
	SubTimedOut
)

func (s SubAckState) String() string {
	switch s {
	case SubPending:
		return "PENDING"
	case SubSubscribed:
		return "SUBSCRIBED"
	case SubInvalidPerms:
		return "INVALID_PERMS"
	case SubMaxStreamsReached:
		return "MAX_STREAMS_REACHED"
	case SubTimedOut:
		return "TIMED_OUT"
	default:
		return "UNKNOWN"
	}
}

// streamSubscription tracks one outstanding or confirmed stream request. The
// request-shaped fields are retained (rather than just the display string in
// Contract) so Unsubscribe can rebuild an equivalent STREAM_REMOVE line
// without the caller having to resupply them.
type streamSubscription struct {
	LastUpdate time.Time
	Contract   string
	State      SubAckState

	full   bool
	root   string
	exp    time.Time
	strike decode.StrikeMilliUSD
	right  enums.OptionRight
	req    enums.OptionReqType
}
