package ports

// PasswordHasher turns plaintext passwords into stored values and checks them.
type PasswordHasher interface {
	// Hash returns a salted one-way encoding of plaintext. It never returns
	// the input unchanged and accepts plaintext of any length.
	Hash(plaintext string) (string, error)
	// IsHashed recognises values produced by Hash from their shape alone.
	IsHashed(stored string) bool
	// Verify reports whether stored is a hash of plaintext. Comparison is
	// constant time.
	Verify(plaintext, stored string) bool
}
