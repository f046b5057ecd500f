package ftgmac

import "errors"

// FieldError attributes a configuration error to the field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (fe *FieldError) Error() string { return fe.Field + ": " + fe.Err.Error() }

func (fe *FieldError) Unwrap() error { return fe.Err }

// validator accumulates configuration errors so a single pass reports every
// bad field.
type validator struct {
	accum []error
}

func (v *validator) addField(field string, err error) {
	if err == nil {
		panic("error argument to addField cannot be nil")
	}
	v.accum = append(v.accum, &FieldError{Field: field, Err: err})
}

func (v *validator) hasError() bool { return len(v.accum) != 0 }

func (v *validator) err() error {
	if len(v.accum) == 1 {
		return v.accum[0]
	} else if len(v.accum) == 0 {
		return nil
	}
	return errors.Join(v.accum...)
}
