package ptb

// Well-known shared objects.
const (
	ClockObjectID       = "0x6"
	SystemStateObjectID = "0x5"
)

// ObjectKind tells how an object is passed to the transaction.
type ObjectKind uint8

// ObjectKind enum. The order matches the on-chain BCS variant index.
const (
	ObjectImmOrOwned ObjectKind = iota
	ObjectShared
)

type (
	// ObjectArg is a resolved object reference ready to be used as a transaction input.
	ObjectArg struct {
		Kind ObjectKind
		ID   string

		// Owned or immutable objects.
		Version uint64
		Digest  string // base58 encoded object digest.

		// Shared objects.
		InitialSharedVersion uint64
		Mutable              bool
	}

	// CallArg is a transaction input: either pure BCS bytes or an object.
	CallArg struct {
		Pure   []byte
		Object *ObjectArg
	}
)

// OwnedObject returns an owned (or immutable) object reference.
func OwnedObject(id string, version uint64, digest string) ObjectArg {
	return ObjectArg{
		Kind:    ObjectImmOrOwned,
		ID:      id,
		Version: version,
		Digest:  digest,
	}
}

// SharedObject returns a shared object reference.
func SharedObject(id string, initialSharedVersion uint64, mutable bool) ObjectArg {
	return ObjectArg{
		Kind:                 ObjectShared,
		ID:                   id,
		InitialSharedVersion: initialSharedVersion,
		Mutable:              mutable,
	}
}

// IsPure reports whether the input carries pure bytes.
func (c CallArg) IsPure() bool {
	return c.Object == nil
}
