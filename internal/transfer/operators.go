package transfer

import (
	"fmt"
	"sync"
)

// Operators picks the storage implementation for a transfer. Registered
// operators are asked in order; the default serves whatever none claims.
type Operators struct {
	mu  sync.RWMutex
	ops []Storage
	def Storage
}

// NewOperators creates a registry around the default storage.
func NewOperators(def Storage, ops ...Storage) *Operators {
	return &Operators{def: def, ops: ops}
}

// Register adds an operator ahead of the default.
func (r *Operators) Register(op Storage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// For returns the operator for a transfer between the given storages. The
// operator owning the target storage must also be able to read the source.
func (r *Operators) For(target, source string) (Storage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, op := range r.ops {
		if op.Claims(target) {
			if op.Claims(source) {
				return op, nil
			}
			return nil, fmt.Errorf("%w: no operator moves %s to %s", ErrStorage, source, target)
		}
	}
	if r.def != nil && r.def.Claims(target) && r.def.Claims(source) {
		return r.def, nil
	}
	return nil, fmt.Errorf("%w: no operator for %s to %s", ErrStorage, source, target)
}

// Reader returns the operator able to list and stat items on storage.
func (r *Operators) Reader(storage string) (Storage, error) {
	return r.For(storage, storage)
}
