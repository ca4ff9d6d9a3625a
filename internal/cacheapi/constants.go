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

package cacheapi

const (
	// ErrorInvalidRequest is returned for malformed requests.
	ErrorInvalidRequest = "invalid_request"
	// ErrorCacheNotFound is returned when the named cache is not configured.
	ErrorCacheNotFound = "cache_not_found"
	// ErrorEntryNotFound is returned when no live entry exists for the key.
	ErrorEntryNotFound = "entry_not_found"
	// ErrorServerError is returned when the cache could not complete the operation.
	ErrorServerError = "server_error"
)

const (
	// TTLQueryParam carries the lifetime of a stored entry as a Go duration, e.g. "10m".
	TTLQueryParam = "ttl"
	// maxEntrySize bounds the request body of a stored entry.
	maxEntrySize = 32 << 20
)
