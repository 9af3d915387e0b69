// Package tags implements the multi-select tag collection backing skills and
// preferred-domain fields: append on select, positional remove, membership
// checks for the picked-already affordance.
package tags

// Set is an ordered collection of selected tags for one logical field.
//
// Select deliberately does not guard against re-adding an item that is
// already present; duplicates are preserved. Callers wanting stricter
// semantics can gate on IsSelected before calling Select.
type Set []string

// Select returns selected with item appended. It never fails.
func Select(item string, selected Set) Set {
	return append(selected[:len(selected):len(selected)], item)
}

// Remove returns selected without the element at index, preserving the
// relative order of the remaining elements. An out-of-range index returns
// ErrIndexOutOfRange; it is never a silent no-op, since that would mask
// state-management bugs in the caller.
func Remove(index int, selected Set) (Set, error) {
	if index < 0 || index >= len(selected) {
		return nil, ErrIndexOutOfRange
	}
	out := make(Set, 0, len(selected)-1)
	out = append(out, selected[:index]...)
	out = append(out, selected[index+1:]...)
	return out, nil
}

// IsSelected reports whether item appears at least once in selected.
func IsSelected(item string, selected Set) bool {
	for _, s := range selected {
		if s == item {
			return true
		}
	}
	return false
}

// Select appends item to the set.
func (s Set) Select(item string) Set { return Select(item, s) }

// Remove drops the element at index.
func (s Set) Remove(index int) (Set, error) { return Remove(index, s) }

// IsSelected reports membership of item.
func (s Set) IsSelected(item string) bool { return IsSelected(item, s) }
