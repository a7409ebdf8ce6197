package statsplit

// Assembler builds a composite record from one pool, one field at a time.
// The first failing field stops the rest; there is no useful partial
// composite.
type Assembler struct {
	name  string
	pool  *Pool
	group Group
	err   error
}

func NewAssembler(name string, pool *Pool, group Group) *Assembler {
	return &Assembler{name: name, pool: pool, group: group}
}

func (a *Assembler) Group() Group {
	return a.group
}

// Err returns a CompositeError wrapping the first field failure, or nil.
func (a *Assembler) Err() error {
	if a.err == nil {
		return nil
	}
	return &CompositeError{Name: a.name, Err: a.err}
}

// Field extracts one sub-field of the composite from the assembler's group.
func Field[S, A any, P Aggregate[S, A]](a *Assembler, typeName string) A {
	return FieldIn[S, A, P](a, typeName, a.group)
}

// FieldIn is Field for a sub-field reported under another group.
func FieldIn[S, A any, P Aggregate[S, A]](a *Assembler, typeName string, group Group) A {
	var zero A
	if a.err != nil {
		return zero
	}
	out, err := Extract[S, A, P](a.pool, typeName, group)
	if err != nil {
		a.err = err
		return zero
	}
	return out
}
