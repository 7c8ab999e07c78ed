package workflow

// Scope marks the lifetime of one mounted screen. Async completions carry the
// generation they started under; once the scope closes the generation moves
// on and late completions no longer match, so a response arriving after
// teardown can never mutate a cache the screen has abandoned.
//
// Independent in-flight calls under a live scope stay valid regardless of
// ordering: a delete completing after a newer list snapshot still applies
// (the cache tolerates removing an absent id).
//
// Only touched from the program loop; no locking.
type Scope struct {
	gen    int
	closed bool
}

func NewScope() *Scope { return &Scope{} }

// Generation is captured by a workflow when it starts a call.
func (s *Scope) Generation() int { return s.gen }

// Close tears the scope down; every outstanding completion becomes a no-op.
func (s *Scope) Close() {
	s.closed = true
	s.gen++
}

func (s *Scope) Closed() bool { return s.closed }

// Live reports whether a completion started under gen may still apply.
func (s *Scope) Live(gen int) bool {
	return !s.closed && gen == s.gen
}
