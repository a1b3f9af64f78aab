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

// Package constants holds the fixed addressing, versioning, and retry
// parameters of the Terminal protocol.
package constants

import "time"

// --- Terminal addresses ---
const (
	// DefaultControlPort is the Terminal's request/response socket.
	DefaultControlPort = 11000
	// DefaultStreamPort is the Terminal's streaming-quote/trade socket.
	DefaultStreamPort = 10000
	DefaultHost       = "localhost"
)

// --- Protocol version ---
const (
	// ClientVersion is reported to the Terminal on every control-socket
	// connect via the version handshake.
	ClientVersion = "0.7.3"
)

// --- Connect retry policy ---
const (
	// ConnectRetries is the number of connection attempts made to either
	// socket before giving up with a ConnectionError.
	ConnectRetries = 15
	// ConnectRetryDelay is the pause between connection attempts.
	ConnectRetryDelay = 1 * time.Second
)

// --- Timeouts ---
const (
	// DefaultRequestTimeout bounds how long a blocking HIST/LAST/AT_TIME
	// call waits for a response before returning a TimeoutError.
	DefaultRequestTimeout = 60 * time.Second
	// DefaultSubscribeTimeout bounds how long Subscribe waits for the
	// Terminal's STREAM_REQ acknowledgement.
	DefaultSubscribeTimeout = 5 * time.Second
	// DefaultStreamReadTimeout bounds how long receiveLoop waits for the
	// next frame off the stream socket before treating the connection as
	// stalled.
	DefaultStreamReadTimeout = 10 * time.Second
)

// --- Buffer sizing ---
const (
	// ReadChunkSize is the buffer size of receiveLoop's buffered reader on the
	// stream socket. Control-socket bodies are not read in chunks of this
	// size: wire.ReadBody reads each body with a single io.ReadFull.
	ReadChunkSize = 4096
	// DefaultEventStoreCapacity is the ring buffer size behind a Client's
	// in-memory stream event store when the caller does not override it.
	DefaultEventStoreCapacity = 10000
)
