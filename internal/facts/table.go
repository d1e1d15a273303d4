package facts

import "sort"

// Table is the merged lookup table for one (locale, category) pair. It is
// read-only once built; every accessor hands out copies.
type Table struct {
	entries map[CountryCode]FactList
}

// Resolution is the outcome of a lookup with fallback.
type Resolution struct {
	// Requested is the code the caller asked for.
	Requested CountryCode
	// Code is the key whose facts were returned.
	Code  CountryCode
	Facts FactList
	// Fallback is true when Requested had no entry and DEFAULT was used.
	Fallback bool
}

// Found reports whether the resolution produced any facts.
func (r Resolution) Found() bool {
	return len(r.Facts) > 0
}

// Get returns the list stored under code. Matching is exact and case-sensitive.
func (t *Table) Get(code CountryCode) (FactList, bool) {
	if t == nil {
		return nil, false
	}
	list, ok := t.entries[code]
	if !ok {
		return nil, false
	}
	return list.Clone(), true
}

// Has reports whether code has its own entry.
func (t *Table) Has(code CountryCode) bool {
	if t == nil {
		return false
	}
	_, ok := t.entries[code]
	return ok
}

// Resolve returns the facts for code, falling back to DEFAULT when code has no
// entry. WORLD is only returned when asked for explicitly.
func (t *Table) Resolve(code CountryCode) Resolution {
	if list, ok := t.Get(code); ok {
		return Resolution{Requested: code, Code: code, Facts: list}
	}
	list, _ := t.Get(DefaultCode)
	return Resolution{
		Requested: code,
		Code:      DefaultCode,
		Facts:     list,
		Fallback:  true,
	}
}

// Default returns the generic facts stored under DEFAULT.
func (t *Table) Default() FactList {
	list, _ := t.Get(DefaultCode)
	return list
}

// World returns the global facts stored under WORLD.
func (t *Table) World() FactList {
	list, _ := t.Get(WorldCode)
	return list
}

// Codes lists every key in the table, sorted.
func (t *Table) Codes() []CountryCode {
	if t == nil {
		return nil
	}
	out := make([]CountryCode, 0, len(t.entries))
	for code := range t.entries {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of keys, reserved keys included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the whole table.
func (t *Table) Entries() map[CountryCode]FactList {
	if t == nil {
		return map[CountryCode]FactList{}
	}
	return Merge(t.entries)
}

// Equal reports whether both tables hold value-equal entries. A nil table
// equals an empty one.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	if t == nil || other == nil {
		return true
	}
	for code, list := range t.entries {
		otherList, ok := other.entries[code]
		if !ok || !list.Equal(otherList) {
			return false
		}
	}
	return true
}
