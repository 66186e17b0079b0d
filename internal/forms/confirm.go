package forms

import "errors"

var ErrConfirmationMismatch = errors.New("typed name does not match")

// DeleteConfirmation guards a destructive action: it is enabled only once the
// operator has typed the target's display name exactly.
type DeleteConfirmation struct {
	Target string
	typed  string
}

func NewDeleteConfirmation(target string) *DeleteConfirmation {
	return &DeleteConfirmation{Target: target}
}

func (d *DeleteConfirmation) Type(s string) { d.typed = s }

func (d *DeleteConfirmation) Enabled() bool {
	return d.Target != "" && d.typed == d.Target
}

// Confirm returns ErrConfirmationMismatch unless typed equals target.
func Confirm(target, typed string) error {
	d := NewDeleteConfirmation(target)
	d.Type(typed)
	if !d.Enabled() {
		return ErrConfirmationMismatch
	}
	return nil
}
