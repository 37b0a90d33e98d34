package util

import "runtime"

// DupBytes dups b.
func DupBytes(b []byte) []byte {
	dst := make([]byte, len(b))
	copy(dst, b)
	return dst
}

// CatchError recovers an error value panicked by a decoding helper and
// stores it in *errp. Runtime errors are programming mistakes and panic
// again.
func CatchError(errp *error) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			if _, isRuntime := err.(runtime.Error); !isRuntime {
				*errp = err
				return
			}
		}
		panic(r)
	}
}
