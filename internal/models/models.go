// Package models holds the CPMS API data shapes. Optional fields are pointers
// so that updates only send what the operator changed. Timestamps and
// decimals travel as strings exactly as the API emits them.
package models

// Entity is implemented by every record the dashboard lists and deletes.
type Entity interface {
	EntityID() int
	DisplayName() string
}

// ConfirmName is what an operator types to confirm deleting e: its display
// name, or its id when the record has no name.
func ConfirmName(e Entity) string {
	if name := e.DisplayName(); name != "" {
		return name
	}
	return itoa(e.EntityID())
}

// Deleted is the free-form payload returned by delete endpoints.
type Deleted map[string]any

func Ptr[T any](v T) *T { return &v }

// Deref returns the pointed-to value or the zero value.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
