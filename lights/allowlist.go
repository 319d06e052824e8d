package lights

import "sync"

// AllowList is the set of entities whose lights ignore the global blackout
// state. The render path reads it once per scene light through Contains,
// while script-driven mutations arrive on other goroutines; a single RWMutex
// covers both sides. Membership is never validated against liveness.
type AllowList struct {
	mu      sync.RWMutex
	members map[Identity]struct{}
}

// NewAllowList creates an empty allow-list.
func NewAllowList() *AllowList {
	return &AllowList{members: make(map[Identity]struct{})}
}

// Add inserts an identity. Inserting an existing member or NullIdentity is a
// no-op.
func (l *AllowList) Add(id Identity) {
	if id == NullIdentity {
		return
	}
	l.mu.Lock()
	l.members[id] = struct{}{}
	l.mu.Unlock()
}

// Remove drops an identity if present.
func (l *AllowList) Remove(id Identity) {
	l.mu.Lock()
	delete(l.members, id)
	l.mu.Unlock()
}

// Contains reports membership. NullIdentity is never a member.
func (l *AllowList) Contains(id Identity) bool {
	if id == NullIdentity {
		return false
	}
	l.mu.RLock()
	_, ok := l.members[id]
	l.mu.RUnlock()
	return ok
}

// Clear empties the list unconditionally.
func (l *AllowList) Clear() {
	l.mu.Lock()
	l.members = make(map[Identity]struct{})
	l.mu.Unlock()
}

// Snapshot returns the current members in unspecified order.
func (l *AllowList) Snapshot() []Identity {
	l.mu.RLock()
	out := make([]Identity, 0, len(l.members))
	for id := range l.members {
		out = append(out, id)
	}
	l.mu.RUnlock()
	return out
}

// Len returns the current member count.
func (l *AllowList) Len() int {
	l.mu.RLock()
	n := len(l.members)
	l.mu.RUnlock()
	return n
}
