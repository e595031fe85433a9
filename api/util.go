package api

import "bytes"

// Bytescmp compare two byte-slice keys, use this with NewLLRBFunc to
// index []byte keys.
func Bytescmp(key, other []byte) int {
	return bytes.Compare(key, other)
}
