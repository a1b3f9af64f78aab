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
	"fmt"
	"sync"
	"time"

	"thetadata-go/enums"
)

// subscriptionRegistry tracks every stream request this client has sent,
// keyed by the client-local id sent on the STREAM_REQ line and echoed back
// on the REQ_RESPONSE frame's req_id field; a caller asking to subscribe
// blocks in verify until its id's state leaves SubPending.
type subscriptionRegistry struct {
	mu   sync.Mutex
	subs map[uint64]*streamSubscription
}

func newSubscriptionRegistry() *subscriptionRegistry {
	return &subscriptionRegistry{subs: make(map[uint64]*streamSubscription)}
}

// register records a newly sent STREAM_REQ awaiting acknowledgement, keeping
// enough of the original request shape to rebuild a STREAM_REMOVE line later.
func (r *subscriptionRegistry) register(id uint64, sub streamSubscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.State = SubPending
	sub.LastUpdate = time.Now()
	r.subs[id] = &sub
}

// lookup returns a copy of the subscription registered under id, if any.
func (r *subscriptionRegistry) lookup(id uint64) (streamSubscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[id]
	if !ok {
		return streamSubscription{}, false
	}
	return *sub, true
}

// verify blocks until the subscription with the given id leaves SubPending
// or the timeout elapses, returning its terminal state. Polls the registry,
// releasing the lock and sleeping pollInterval between checks, so a resolve()
// that never arrives cannot keep this goroutine past the deadline.
func (r *subscriptionRegistry) verify(id uint64, timeout time.Duration) (SubAckState, error) {
	deadline := time.Now().Add(timeout)
	const pollInterval = 25 * time.Millisecond

	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		sub, ok := r.subs[id]
		if !ok {
			return SubPending, fmt.Errorf("theta: no subscription registered for request id %d", id)
		}
		if sub.State != SubPending {
			return sub.State, nil
		}
		if time.Now().After(deadline) {
			return SubPending, &TimeoutError{Op: fmt.Sprintf("subscription ack for request id %d", id)}
		}
		r.mu.Unlock()
		time.Sleep(pollInterval)
		r.mu.Lock()
	}
}

// resolve applies an ack to the subscription registered under reqID. A
// negative reqID (the Terminal's "targeted remove" sentinel) or an id this
// client never registered is ignored: there is no pending verify() call
// waiting on it.
func (r *subscriptionRegistry) resolve(reqID int64, resp enums.StreamResponseType) {
	if reqID < 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[uint64(reqID)]
	if !ok {
		return
	}

	switch resp {
	case enums.StreamRespSubscribed:
		sub.State = SubSubscribed
	case enums.StreamRespInvalidPerms:
		sub.State = SubInvalidPerms
	case enums.StreamRespMaxStreamsReached:
		sub.State = SubMaxStreamsReached
	case enums.StreamRespTimedOut:
		sub.State = SubTimedOut
	}
	sub.LastUpdate = time.Now()
}

// remove drops a subscription from the registry, e.g. after an explicit
// unsubscribe or a terminal failure state the caller has already handled.
func (r *subscriptionRegistry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
}

// active returns a snapshot of every subscription currently in the
// SubSubscribed state, keyed by request id.
func (r *subscriptionRegistry) active() map[uint64]streamSubscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uint64]streamSubscription)
	for id, sub := range r.subs {
		if sub.State == SubSubscribed {
			out[id] = *sub
		}
	}
	return out
}
