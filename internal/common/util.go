package common

// WipeByteArray overwrites the buffer with zeros. Use it to drop password
// material as soon as it has been consumed. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
