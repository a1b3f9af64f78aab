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
	"testing"

	"thetadata-go/enums"
)

func tradeEvent(root string, price float64) StreamEvent {
	return StreamEvent{
		Type:     enums.StreamTrade,
		Contract: Contract{Root: root},
		Trade:    &Trade{Price: price},
	}
}

func TestEventStoreAddedEventsAreRetrievable(t *testing.T) {
	store := NewEventStore(100)
	store.Add(tradeEvent("AAPL", 150))
	store.Add(tradeEvent("AAPL", 151))

	got := store.Recent("AAPL", 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
}

func TestEventStoreChronologicalOrder(t *testing.T) {
	store := NewEventStore(100)
	store.Add(tradeEvent("AAPL", 100))
	store.Add(tradeEvent("AAPL", 200))
	store.Add(tradeEvent("AAPL", 300))

	got := store.Recent("AAPL", 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Trade.Price != 100 {
		t.Errorf("first event should be oldest (100), got %v", got[0].Trade.Price)
	}
	if got[2].Trade.Price != 300 {
		t.Errorf("last event should be newest (300), got %v", got[2].Trade.Price)
	}
}

func TestEventStoreEvictsOldestAtCapacity(t *testing.T) {
	store := NewEventStore(3)
	store.Add(tradeEvent("AAPL", 1))
	store.Add(tradeEvent("AAPL", 2))
	store.Add(tradeEvent("AAPL", 3))
	store.Add(tradeEvent("AAPL", 4)) // evicts price 1

	got := store.Recent("AAPL", 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 events (capacity), got %d", len(got))
	}
	if got[0].Trade.Price != 2 {
		t.Errorf("oldest surviving event should be price 2, got %v", got[0].Trade.Price)
	}
}

func TestEventStoreFiltersByContract(t *testing.T) {
	store := NewEventStore(100)
	store.Add(tradeEvent("AAPL", 1))
	store.Add(tradeEvent("MSFT", 2))
	store.Add(tradeEvent("AAPL", 3))

	got := store.Recent("MSFT", 10)
	if len(got) != 1 {
		t.Fatalf("expected 1 MSFT event, got %d", len(got))
	}
}

func TestEventStoreRecentRespectsLimit(t *testing.T) {
	store := NewEventStore(100)
	for i := 0; i < 10; i++ {
		store.Add(tradeEvent("AAPL", float64(i)))
	}
	got := store.Recent("AAPL", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[2].Trade.Price != 9 {
		t.Errorf("last of limited window should be newest (9), got %v", got[2].Trade.Price)
	}
}

func TestEventStoreAllReturnsEverything(t *testing.T) {
	store := NewEventStore(5)
	store.Add(tradeEvent("AAPL", 1))
	store.Add(tradeEvent("MSFT", 2))

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 events total, got %d", len(all))
	}
}

func TestEventStoreSeenCountsEvictedEvents(t *testing.T) {
	store := NewEventStore(2)
	for i := 0; i < 5; i++ {
		store.Add(tradeEvent("AAPL", float64(i)))
	}
	if got := store.Seen(); got != 5 {
		t.Errorf("Seen() = %d, want 5", got)
	}
	if len(store.All()) != 2 {
		t.Errorf("All() should be capped at capacity 2, got %d", len(store.All()))
	}
}

func TestEventStoreConcurrentAccess(t *testing.T) {
	store := NewEventStore(1000)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Add(tradeEvent("AAPL", float64(n)))
		}(i)
	}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Recent("AAPL", 10)
		}()
	}
	wg.Wait()
	if store.Seen() != 50 {
		t.Errorf("Seen() = %d, want 50", store.Seen())
	}
}

func TestSubAckStateString(t *testing.T) {
	tests := []struct {
		state SubAckState
		want  string
	}{
		{SubPending, "PENDING"},
		{SubSubscribed, "SUBSCRIBED"},
		{SubInvalidPerms, "INVALID_PERMS"},
		{SubMaxStreamsReached, "MAX_STREAMS_REACHED"},
		{SubTimedOut, "TIMED_OUT"},
		{SubAckState(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
