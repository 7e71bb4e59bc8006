package db

import (
	"fmt"
	"strings"
)

// Releaser is implemented by payloads that need to know when the list
// holding them is torn down.
type Releaser interface {
	Release()
}

type lNode[T any] struct {
	value T
	next  *lNode[T] // owning
	prev  *lNode[T] // lookup only
}

// List is a doubly linked list. It does no locking, callers sharing a
// List between goroutines must serialize access themselves.
type List[T any] struct {
	length int
	head   *lNode[T]
	tail   *lNode[T]
}

func NewList[T any]() *List[T] {
	return &List[T]{length: 0, head: nil, tail: nil}
}

func (l *List[T]) Len() int {
	return l.length
}

// Add appends value at the tail.
func (l *List[T]) Add(value T) {
	node := &lNode[T]{value: value, prev: l.tail}
	if l.tail == nil {
		l.head = node
	} else {
		l.tail.next = node
	}

	l.tail = node
	l.length++
}

// Get returns the value at index, counting from the head. It reports
// false for any index outside [0, Len()).
func (l *List[T]) Get(index int) (T, bool) {
	var zero T
	if index < 0 || index >= l.length {
		return zero, false
	}

	node := l.head
	for i := 0; i < index; i++ {
		node = node.next
	}

	return node.value, true
}

// Reverse flips the traversal order in place. Both links of every node are
// rewritten so walking prev from the tail still mirrors walking next from
// the head.
func (l *List[T]) Reverse() {
	if l.length <= 1 {
		return
	}

	var prev *lNode[T]
	current := l.head
	for current != nil {
		next := current.next
		current.next = prev
		current.prev = next
		prev = current
		current = next
	}

	l.head, l.tail = l.tail, l.head
}

// Values copies the payloads out in traversal order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.length)
	for node := l.head; node != nil; node = node.next {
		out = append(out, node.value)
	}

	return out
}

func (l *List[T]) String() string {
	var sb strings.Builder
	for node := l.head; node != nil; node = node.next {
		if node != l.head {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, node.value)
	}

	return sb.String()
}

// Clear tears the list down from head to tail. Every node is unlinked once
// and payloads implementing Releaser are released in traversal order. The
// list is empty and usable afterwards.
func (l *List[T]) Clear() {
	node := l.head
	l.head, l.tail = nil, nil
	l.length = 0

	for node != nil {
		next := node.next
		node.next, node.prev = nil, nil
		if r, ok := any(node.value).(Releaser); ok {
			r.Release()
		}
		node = next
	}
}
