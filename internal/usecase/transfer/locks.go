package transfer

import "sync"

// accountLocks hands out one mutex per account id. Entries are never
// removed; account ids are never reused.
type accountLocks struct {
	m sync.Map // int32 -> *sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{}
}

func (l *accountLocks) get(id int32) *sync.Mutex {
	if mu, ok := l.m.Load(id); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := l.m.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// lockPair locks the lower id first, then the higher one. Equal ids take a
// single lock. The returned func releases in reverse order.
func (l *accountLocks) lockPair(a, b int32) func() {
	if a == b {
		mu := l.get(a)
		mu.Lock()
		return mu.Unlock
	}
	if b < a {
		a, b = b, a
	}

	first, second := l.get(a), l.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
