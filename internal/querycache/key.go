package querycache

import (
	"encoding/json"
	"fmt"
)

// Key identifies a cached query. The first element is the namespace, e.g.
// Key{"companies"}, Key{"companies", 4}, Key{"sessions", "driver", 9}.
type Key []any

func (k Key) String() string {
	b, err := json.Marshal([]any(k))
	if err != nil {
		return fmt.Sprint([]any(k))
	}
	return string(b)
}

func (k Key) Namespace() string {
	if len(k) == 0 {
		return ""
	}
	return fmt.Sprint(k[0])
}

// HasPrefix reports whether k starts with every element of p. Elements are
// compared by their printed form so 4 and int64(4) match.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if fmt.Sprint(k[i]) != fmt.Sprint(p[i]) {
			return false
		}
	}
	return true
}

// With returns a copy of k extended by parts.
func (k Key) With(parts ...any) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}
