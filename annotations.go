package hipack

// AnnotationSet holds the set of annotation names attached to a Value. It
// is represented internally the same way the data model describes it: a
// Dict mapping each annotation name to the bool true, so Dict's existing
// insertion-order and hashing machinery is reused rather than duplicated.
type AnnotationSet struct {
	names *Dict
}

func newAnnotationSet() *AnnotationSet {
	return &AnnotationSet{names: NewDict()}
}

// Has reports whether name is present in the set.
func (a *AnnotationSet) Has(name string) bool {
	if a == nil {
		return false
	}
	return a.names.Has(name)
}

// Add inserts name into the set. Adding a name already present is a no-op.
func (a *AnnotationSet) Add(name string) {
	a.names.Set(name, Bool(true))
}

// Delete removes name from the set and reports whether it was present.
func (a *AnnotationSet) Delete(name string) bool {
	if a == nil {
		return false
	}
	return a.names.Delete(name)
}

// Len reports the number of annotation names in the set.
func (a *AnnotationSet) Len() int {
	if a == nil {
		return 0
	}
	return a.names.Len()
}

// Names returns the annotation names in the set, in the order they were
// first added.
func (a *AnnotationSet) Names() []string {
	if a == nil {
		return nil
	}
	return a.names.Keys()
}
