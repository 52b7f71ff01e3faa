package cloudevents

// TypeRegistry creates typed instances for decoding.
type TypeRegistry interface {
	New(envelopeType string) any // nil if unknown type
}

// FactoryMap is a simple TypeRegistry for standalone use.
// Keys are envelope type descriptors; factories must return pointers so the
// decoded payload and rehydrated identity are addressable.
type FactoryMap map[string]func() any

func (m FactoryMap) New(envelopeType string) any {
	if f, ok := m[envelopeType]; ok {
		return f()
	}
	return nil
}

var _ TypeRegistry = (FactoryMap)(nil)
