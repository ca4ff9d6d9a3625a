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

package memcache

import "container/heap"

// frequencyItem tracks how often a key was used. seq orders items used equally often: the item
// used longest ago has the lowest seq.
type frequencyItem struct {
	key   string
	count int64
	seq   uint64
	index int
}

// frequencyQueue orders keys for LFU eviction, least used first.
type frequencyQueue struct {
	items frequencyItems
	seq   uint64
}

func newFrequencyQueue() *frequencyQueue {
	return &frequencyQueue{}
}

func (q *frequencyQueue) Len() int {
	return len(q.items)
}

// add queues a key used once.
func (q *frequencyQueue) add(key string) *frequencyItem {
	q.seq++
	item := &frequencyItem{key: key, count: 1, seq: q.seq}
	heap.Push(&q.items, item)
	return item
}

// use records another use of the item.
func (q *frequencyQueue) use(item *frequencyItem) {
	if item.index < 0 {
		return
	}
	q.seq++
	item.count++
	item.seq = q.seq
	heap.Fix(&q.items, item.index)
}

// remove drops the item. Removing an item twice is a no-op.
func (q *frequencyQueue) remove(item *frequencyItem) {
	if item.index < 0 {
		return
	}
	heap.Remove(&q.items, item.index)
}

// popLeast removes and returns the least used item, or nil when the queue is empty.
func (q *frequencyQueue) popLeast() *frequencyItem {
	if len(q.items) == 0 {
		return nil
	}
	return heap.Pop(&q.items).(*frequencyItem)
}

type frequencyItems []*frequencyItem

func (f frequencyItems) Len() int { return len(f) }

func (f frequencyItems) Less(i, j int) bool {
	if f[i].count == f[j].count {
		return f[i].seq < f[j].seq
	}
	return f[i].count < f[j].count
}

func (f frequencyItems) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index, f[j].index = i, j
}

func (f *frequencyItems) Push(x any) {
	item := x.(*frequencyItem)
	item.index = len(*f)
	*f = append(*f, item)
}

func (f *frequencyItems) Pop() any {
	items := *f
	last := len(items) - 1
	item := items[last]
	items[last] = nil
	item.index = -1
	*f = items[:last]
	return item
}
