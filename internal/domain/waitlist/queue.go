package waitlist

import "container/heap"

// priorityQueue aplica o comparador Before sobre as entradas de um animal.
// O comparador é explícito; as entidades não carregam ordenação implícita.
type priorityQueue []Entry

func (q priorityQueue) Len() int           { return len(q) }
func (q priorityQueue) Less(i, j int) bool { return Before(q[i], q[j]) }
func (q priorityQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x any)        { *q = append(*q, x.(Entry)) }
func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

func newQueue(entries []Entry) *priorityQueue {
	q := make(priorityQueue, len(entries))
	copy(q, entries)
	heap.Init(&q)
	return &q
}

func (q *priorityQueue) popBest() (Entry, bool) {
	if q.Len() == 0 {
		return Entry{}, false
	}
	return heap.Pop(q).(Entry), true
}
