package typesystem

import (
	"sort"
	"strings"
)

// Subst is a mapping from type variable names to types.
type Subst map[string]Type

// Compose returns s1 followed by s2: s2 is applied to the range of s1 before
// the two are merged. Entries of s1 win over entries of s2 for the same variable.
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := make(Subst, len(s1)+len(s2))
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s1 {
		subst[k] = v.Apply(s2)
	}
	return subst
}

// Lookup returns the binding of tv.
func (s Subst) Lookup(tv TVar) (Type, bool) {
	t, ok := s[tv.Name]
	return t, ok
}

// Equal compares two substitutions binding by binding.
func (s Subst) Equal(other Subst) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		ov, ok := other[k]
		if !ok || !TypesEqual(v, ov) {
			return false
		}
	}
	return true
}

func (s Subst) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = "'" + k + ": " + s[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
