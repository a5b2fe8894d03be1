// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"errors"
	"fmt"
	"slices"
)

// Value is an identifier with a stable and an unstable spelling. The
// empty string means the spelling does not exist. Values are immutable
// and safe to share.
type Value struct {
	stable         string
	unstable       string
	preferUnstable bool
}

// New returns a stable-preferred value: Name is the stable spelling when
// one exists, otherwise the unstable spelling. At least one spelling
// must be non-empty.
func New(stable, unstable string) (Value, error) {
	if stable == "" && unstable == "" {
		return Value{}, errors.New("namespaced value requires a stable or unstable name")
	}
	return Value{stable: stable, unstable: unstable}, nil
}

// NewUnstable returns an unstable-preferred value: Name is always the
// unstable spelling and AltName is the stable one. The unstable
// spelling is required.
func NewUnstable(stable, unstable string) (Value, error) {
	if unstable == "" {
		return Value{}, fmt.Errorf("unstable-preferred value %q requires an unstable name", stable)
	}
	return Value{stable: stable, unstable: unstable, preferUnstable: true}, nil
}

// MustNew is like [New] but panics on error. Intended for package-level
// declarations of well-known identifiers.
func MustNew(stable, unstable string) Value {
	value, err := New(stable, unstable)
	if err != nil {
		panic("namespace: " + err.Error())
	}
	return value
}

// MustNewUnstable is like [NewUnstable] but panics on error.
func MustNewUnstable(stable, unstable string) Value {
	value, err := NewUnstable(stable, unstable)
	if err != nil {
		panic("namespace: " + err.Error())
	}
	return value
}

// Stable returns the stable spelling, or "" if there is none.
func (v Value) Stable() string { return v.stable }

// Unstable returns the unstable spelling, or "" if there is none.
func (v Value) Unstable() string { return v.unstable }

// PrefersUnstable reports whether Name returns the unstable spelling.
func (v Value) PrefersUnstable() bool { return v.preferUnstable }

// Name returns the preferred spelling. It is never empty for a value
// built by one of the constructors.
func (v Value) Name() string {
	if v.preferUnstable || v.stable == "" {
		return v.unstable
	}
	return v.stable
}

// AltName returns the other spelling, or "" when only one exists.
func (v Value) AltName() string {
	if v.preferUnstable || v.stable == "" {
		return v.stable
	}
	return v.unstable
}

// Matches reports whether s is either spelling. The empty string never
// matches.
func (v Value) Matches(s string) bool {
	if s == "" {
		return false
	}
	return s == v.stable || s == v.unstable
}

// FindIn looks the value up in a wire object, preferred spelling first.
// JSON null values count as absent, so a null under the preferred key
// falls through to the alternate key.
func (v Value) FindIn(object map[string]any) (any, bool) {
	if object == nil {
		return nil, false
	}
	for _, key := range [2]string{v.Name(), v.AltName()} {
		if key == "" {
			continue
		}
		if found, ok := object[key]; ok && found != nil {
			return found, true
		}
	}
	return nil, false
}

// IncludedIn reports whether either spelling appears in list.
func (v Value) IncludedIn(list []string) bool {
	return slices.ContainsFunc(list, v.Matches)
}

// Equal reports whether both values carry the same two spellings.
// Preference is not compared.
func (v Value) Equal(other Value) bool {
	return v.stable == other.stable && v.unstable == other.unstable
}

// Names returns the non-empty spellings, preferred first.
func (v Value) Names() []string {
	names := make([]string, 0, 2)
	if name := v.Name(); name != "" {
		names = append(names, name)
	}
	if alt := v.AltName(); alt != "" {
		names = append(names, alt)
	}
	return names
}

// String returns the preferred spelling.
func (v Value) String() string {
	return v.Name()
}

// IsZero reports whether v was never constructed.
func (v Value) IsZero() bool {
	return v.stable == "" && v.unstable == ""
}
