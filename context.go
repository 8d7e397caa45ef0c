package contexlog

import (
	"context"
	"fmt"
	"strings"
)

// contextKey is the private key under which a Snapshot travels in a
// context.Context.
type contextKey struct{}

// Pair is a single context field. Pairs keep insertion order so the joined
// display string is stable between log calls.
type Pair struct {
	// Key is the field name.
	Key string
	// Value is the field value; it is rendered with fmt.Sprint.
	Value any
}

// Snapshot is an ordered, read-only view of the log context carried by a
// context.Context. The zero value is an empty snapshot.
type Snapshot struct {
	pairs []Pair
}

// FromContext returns the snapshot carried by ctx, or an empty snapshot when
// none was set.
func FromContext(ctx context.Context) Snapshot {
	if s, ok := ctx.Value(contextKey{}).(Snapshot); ok {
		return s
	}

	return Snapshot{}
}

// Set merges loose key-value pairs into the snapshot carried by ctx and
// returns the derived context. The original context is left untouched, so
// goroutines holding other contexts never observe the change. An existing key
// keeps its position and takes the new value. A non-string key is rendered
// with fmt.Sprint; a trailing key without a value is dropped silently.
func Set(ctx context.Context, kvs ...any) context.Context {
	if len(kvs) == 0 {
		return ctx
	}

	return context.WithValue(ctx, contextKey{}, FromContext(ctx).merge(kvs))
}

// Clear returns a context carrying an empty snapshot. Contexts derived from
// ctx before the call are unaffected.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, Snapshot{})
}

// Scoped runs fn with a context carrying the merged pairs on top of ctx.
// The caller's context is exactly as it was when Scoped returns, on every
// exit path: normal return, error return, or a panic inside fn. It returns
// whatever fn returns.
func Scoped(ctx context.Context, fn func(context.Context) error, kvs ...any) error {
	return fn(Set(ctx, kvs...))
}

// merge returns a copy of s with kvs folded in, last write per key winning.
func (s Snapshot) merge(kvs []any) Snapshot {
	pairs := make([]Pair, len(s.pairs), len(s.pairs)+len(kvs)/2)
	copy(pairs, s.pairs)

	merged := Snapshot{pairs: pairs}
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			key = fmt.Sprint(kvs[i])
		}

		merged.put(key, kvs[i+1])
	}

	return merged
}

// put updates an existing key in place or appends a new pair.
func (s *Snapshot) put(key string, value any) {
	for i := range s.pairs {
		if s.pairs[i].Key == key {
			s.pairs[i].Value = value
			return
		}
	}

	s.pairs = append(s.pairs, Pair{Key: key, Value: value})
}

// Len reports the number of fields in the snapshot.
func (s Snapshot) Len() int {
	return len(s.pairs)
}

// Pairs returns a copy of the fields in insertion order.
func (s Snapshot) Pairs() []Pair {
	if len(s.pairs) == 0 {
		return nil
	}

	pairs := make([]Pair, len(s.pairs))
	copy(pairs, s.pairs)

	return pairs
}

// Value returns the value stored under key and whether the key is present.
func (s Snapshot) Value(key string) (any, bool) {
	for _, p := range s.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}

	return nil, false
}

// String joins the fields as space-separated key=value pairs in insertion
// order. An empty snapshot yields an empty string.
func (s Snapshot) String() string {
	if len(s.pairs) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range s.pairs {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(p.Key)
		b.WriteByte('=')
		fmt.Fprint(&b, p.Value)
	}

	return b.String()
}
