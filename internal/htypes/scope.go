package htypes

// Binding is one name's entry in a scope: its type and whether it was
// introduced as a constant (rejecting destructive assignment).
type Binding struct {
	Name    string
	Type    Type
	Const   bool
}

// frame is one level of the scope stack. Closed frames do not consult the
// frame below them on lookup — spec §4.5 opens a closed frame when entering
// a type body or a function body ("hiding outer locals"), and an open frame
// for let-in/for/block/if bodies, which may still see enclosing locals.
type frame struct {
	closed   bool
	bindings map[string]Binding
}

// Scope is a stack of lexical frames used by the semantic analyzer's pass 3
// to resolve variable/constant names. The bottom frame always holds global
// constants and is never popped.
type Scope struct {
	frames []frame
}

// NewScope returns a Scope with a single open global frame.
func NewScope() *Scope {
	return &Scope{frames: []frame{{bindings: map[string]Binding{}}}}
}

// PushOpen opens a new frame that may still see bindings from enclosing
// frames on lookup.
func (s *Scope) PushOpen() {
	s.frames = append(s.frames, frame{bindings: map[string]Binding{}})
}

// PushClosed opens a new frame that hides every binding below it.
func (s *Scope) PushClosed() {
	s.frames = append(s.frames, frame{closed: true, bindings: map[string]Binding{}})
}

// Pop discards the innermost frame.
func (s *Scope) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Bind adds name to the innermost frame, shadowing any outer binding of the
// same name. Re-binding within the same frame silently overwrites, matching
// spec §4.5's member-default pass, which binds a member name as a visible
// local only after its own default has been evaluated, one at a time within
// the same type-body frame.
func (s *Scope) Bind(b Binding) {
	top := &s.frames[len(s.frames)-1]
	top.bindings[b.Name] = b
}

// Lookup searches from the innermost frame outward, stopping at (but still
// checking) the first closed frame encountered.
func (s *Scope) Lookup(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].bindings[name]; ok {
			return b, true
		}
		if s.frames[i].closed {
			break
		}
	}
	return Binding{}, false
}
