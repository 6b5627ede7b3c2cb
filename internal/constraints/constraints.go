// Package constraints provides type constraints for generic helpers.
package constraints

// Byteseq is a string or a byte slice holding text.
type Byteseq interface {
	~string | ~[]byte
}
