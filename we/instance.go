package we

// Instance is a contract's state materialized for one call. State is never
// nil; a contract that has never been saved starts from the zero value.
type Instance[T any] struct {
	Contract ContractId
	Revision Revision
	Kind     ContractKind
	State    *T
}

func (i *Instance[T]) Initialized() bool {
	return i.Revision != InitialRevision
}

// Outcome is the committed result of a mutating call.
type Outcome[T any] struct {
	Instance[T]
	Method MethodName
	Logs   []string
}
