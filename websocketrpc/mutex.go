package websocketrpc

import "sync"

// pendingRequests is a map of request ID to the channel awaiting its response.
type pendingRequests struct {
	sync.Mutex
	m map[uint64]chan *Response
}

func newPendingRequests() *pendingRequests {
	return &pendingRequests{m: make(map[uint64]chan *Response)}
}

// Add registers a request ID and returns the channel its response is delivered to.
func (p *pendingRequests) Add(id uint64) chan *Response {
	ch := make(chan *Response, 1)
	p.Lock()
	defer p.Unlock()
	p.m[id] = ch
	return ch
}

// Resolve delivers a response to its waiter, if any.
func (p *pendingRequests) Resolve(res *Response) bool {
	p.Lock()
	ch, ok := p.m[res.ID]
	delete(p.m, res.ID)
	p.Unlock()
	if ok {
		ch <- res
	}
	return ok
}

// Delete forgets the given request ID.
func (p *pendingRequests) Delete(id uint64) {
	p.Lock()
	defer p.Unlock()
	delete(p.m, id)
}

// subscriptions is a map of subscription ID to its event handler.
type subscriptions struct {
	sync.RWMutex
	m map[int64]EventHandler
}

func newSubscriptions() *subscriptions {
	return &subscriptions{m: make(map[int64]EventHandler)}
}

// Set sets the event handler for the given subscription ID.
func (s *subscriptions) Set(id int64, h EventHandler) {
	s.Lock()
	defer s.Unlock()
	s.m[id] = h
}

// Get gets the event handler for the given subscription ID.
func (s *subscriptions) Get(id int64) (EventHandler, bool) {
	s.RLock()
	defer s.RUnlock()
	h, ok := s.m[id]
	return h, ok
}

// Delete deletes the given subscription ID.
func (s *subscriptions) Delete(id int64) {
	s.Lock()
	defer s.Unlock()
	delete(s.m, id)
}

// Len returns the number of subscriptions.
func (s *subscriptions) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.m)
}
