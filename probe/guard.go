package probe

import "fmt"

// Guard calls fn and recovers any panic it raises. The recovered value is
// returned as an error: errors are returned as is, anything else is wrapped.
// A panic never propagates past Guard.
func Guard(fn func() int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()

	fn()
	return nil
}

// GuardErr calls fn and returns its error, discarding the value. It is the
// error-return counterpart of Guard.
func GuardErr(fn func() (int, error)) error {
	_, err := fn()
	return err
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("probe: recovered panic: %v", r)
}
