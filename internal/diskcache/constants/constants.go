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

// Package constants defines constants used by the disk cache packages.
package constants

import "math"

const (
	// FileNamePrefix prefixes every cache file so a directory scan can tell cache files apart.
	FileNamePrefix = "cdu_"
	// TempFilePrefix prefixes files that are being written. It must not share FileNamePrefix.
	TempFilePrefix = ".cdu_tmp_"
	// DefaultCacheName is the directory name used when a blank cache name is requested.
	DefaultCacheName = "cacheUtils"
	// Unlimited disables a size or count bound.
	Unlimited int64 = math.MaxInt64
)

// Type prefixes namespace the value types stored under the same caller key.
const (
	TypePrefixBytes        = "by_"
	TypePrefixString       = "st_"
	TypePrefixJSONObject   = "jo_"
	TypePrefixJSONArray    = "ja_"
	TypePrefixBitmap       = "bi_"
	TypePrefixDrawable     = "dr_"
	TypePrefixParcelable   = "pa_"
	TypePrefixSerializable = "se_"
)

// TypePrefixes lists every type prefix. Removing a caller key touches each of them.
var TypePrefixes = []string{
	TypePrefixBytes,
	TypePrefixString,
	TypePrefixJSONObject,
	TypePrefixJSONArray,
	TypePrefixBitmap,
	TypePrefixDrawable,
	TypePrefixParcelable,
	TypePrefixSerializable,
}
