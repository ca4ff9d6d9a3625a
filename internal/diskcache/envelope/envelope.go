/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package envelope attaches an optional absolute expiry time to a cached payload.
//
// Every stored payload starts with a one byte tag. A payload without expiry is
// tagNoExpiry followed by the value bytes; a payload with expiry is tagDueTime,
// eight big-endian bytes of unix seconds, then the value bytes.
package envelope

import (
	"encoding/binary"
	"errors"
	"time"
)

const (
	tagNoExpiry byte = 0x00
	tagDueTime  byte = 0x01

	dueTimeSize = 8
	// HeaderSize is the size of the header of a payload carrying a due time.
	HeaderSize = 1 + dueTimeSize
)

// ErrMalformed is returned for payloads that do not start with a known header.
var ErrMalformed = errors.New("malformed cache payload")

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Wrap prepends the header to the payload. A negative ttl never expires; otherwise the due
// time is now plus the whole seconds of ttl.
func Wrap(ttl time.Duration, payload []byte) []byte {
	if ttl < 0 {
		data := make([]byte, 1+len(payload))
		data[0] = tagNoExpiry
		copy(data[1:], payload)
		return data
	}
	return WrapAt(DueTimeFor(ttl), payload)
}

// DueTimeFor returns the due time Wrap records for ttl: now plus the whole seconds of ttl,
// truncated to seconds. A negative ttl returns the zero time.
func DueTimeFor(ttl time.Duration) time.Time {
	if ttl < 0 {
		return time.Time{}
	}
	return time.Unix(nowFunc().Unix()+int64(ttl/time.Second), 0)
}

// WrapAt prepends a header carrying the given due time, truncated to seconds.
func WrapAt(due time.Time, payload []byte) []byte {
	data := make([]byte, HeaderSize+len(payload))
	data[0] = tagDueTime
	binary.BigEndian.PutUint64(data[1:HeaderSize], uint64(due.Unix()))
	copy(data[HeaderSize:], payload)
	return data
}

// HasDueTime reports whether the data carries a due time header.
func HasDueTime(data []byte) bool {
	return len(data) >= HeaderSize && data[0] == tagDueTime
}

// DueTime returns the due time carried by the data.
func DueTime(data []byte) (time.Time, bool) {
	if !HasDueTime(data) {
		return time.Time{}, false
	}
	return time.Unix(int64(binary.BigEndian.Uint64(data[1:HeaderSize])), 0), true
}

// IsExpired reports whether the data carries a due time that has passed.
func IsExpired(data []byte) bool {
	due, ok := DueTime(data)
	return ok && nowFunc().After(due)
}

// Strip returns the payload without its header.
func Strip(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrMalformed
	}
	switch data[0] {
	case tagNoExpiry:
		return data[1:], nil
	case tagDueTime:
		if len(data) < HeaderSize {
			return nil, ErrMalformed
		}
		return data[HeaderSize:], nil
	default:
		return nil, ErrMalformed
	}
}
