package ir

import (
	"strconv"
)

// KeyType discriminates the variants of a Key.
type KeyType int

const (
	IntKeyType KeyType = iota
	StringKeyType
)

// Key is a php array key, either an int or a string. Equality is strict
// per variant: IntKey(1) and StringKey("1") are distinct keys. Key is
// comparable and is used directly as the map key of array Values.
type Key struct {
	t KeyType
	i int64
	s string
}

func IntKey(n int64) Key {
	return Key{t: IntKeyType, i: n}
}

func StringKey(s string) Key {
	return Key{t: StringKeyType, s: s}
}

func (k Key) Type() KeyType {
	return k.t
}

func (k Key) IsInt() bool {
	return k.t == IntKeyType
}

func (k Key) IsString() bool {
	return k.t == StringKeyType
}

// AsInt returns the integer key value, if the key is an int key.
func (k Key) AsInt() (int64, bool) {
	return k.i, k.t == IntKeyType
}

// AsString returns the string key value, if the key is a string key.
func (k Key) AsString() (string, bool) {
	return k.s, k.t == StringKeyType
}

// String renders the key the way php would when echoing it: int keys in
// decimal, string keys verbatim.
func (k Key) String() string {
	if k.t == IntKeyType {
		return strconv.FormatInt(k.i, 10)
	}
	return k.s
}

// Compare totally orders keys so callers can iterate arrays
// deterministically. Int keys order numerically, string keys lexically,
// and mixed pairs compare the int's decimal form against the string.
func (k Key) Compare(o Key) int {
	if k.t == IntKeyType && o.t == IntKeyType {
		switch {
		case k.i < o.i:
			return -1
		case k.i > o.i:
			return 1
		}
		return 0
	}
	ks, os := k.String(), o.String()
	switch {
	case ks < os:
		return -1
	case ks > os:
		return 1
	}
	// "1" and 1 render alike but remain distinct keys
	if k.t == o.t {
		return 0
	}
	if k.t == IntKeyType {
		return -1
	}
	return 1
}
