package db

import (
	"path"
	"sort"
	"sync"
)

// Database is a keyspace of string lists. Lists do not lock, so every
// access goes through mu.
type Database struct {
	mu    sync.Mutex
	lists map[string]*List[string]
}

func NewDatabase() *Database {
	return &Database{lists: make(map[string]*List[string])}
}

func (d *Database) FlushAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, l := range d.lists {
		l.Clear()
	}
	d.lists = make(map[string]*List[string])
}

func (d *Database) DbSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.lists)
}

// Keys returns the sorted names matching a glob pattern. A malformed
// pattern matches nothing.
func (d *Database) Keys(pattern string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]string, 0, len(d.lists))
	for k := range d.lists {
		if ok, err := path.Match(pattern, k); err == nil && ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	return keys
}

func (d *Database) Del(keys ...string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	deleted := 0
	for _, k := range keys {
		l, found := d.lists[k]
		if !found {
			continue
		}

		l.Clear()
		delete(d.lists, k)
		deleted++
	}

	return deleted
}

func (d *Database) RPush(lname string, values ...string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, found := d.lists[lname]
	if !found {
		l = NewList[string]()
		d.lists[lname] = l
	}

	for _, v := range values {
		l.Add(v)
	}

	return l.Len()
}

// LIndex looks up a single element. Negative indexes count back from the
// tail, -1 being the last element.
func (d *Database) LIndex(lname string, index int) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, found := d.lists[lname]
	if !found {
		return "", false
	}

	if index < 0 {
		index += l.Len()
	}

	return l.Get(index)
}

func (d *Database) LLen(lname string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, found := d.lists[lname]
	if !found {
		return 0
	}

	return l.Len()
}

// LRange returns the elements between start and stop, both inclusive.
// Offsets may be negative and are clamped to the list bounds.
func (d *Database) LRange(lname string, start int, stop int) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, found := d.lists[lname]
	if !found {
		return []string{}
	}

	n := l.Len()
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return []string{}
	}

	return l.Values()[start : stop+1]
}

func (d *Database) LReverse(lname string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, found := d.lists[lname]
	if !found {
		return false
	}

	l.Reverse()
	return true
}

func (d *Database) Render(lname string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, found := d.lists[lname]
	if !found {
		return "", false
	}

	return l.String(), true
}
