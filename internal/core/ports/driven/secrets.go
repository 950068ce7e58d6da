package driven

// SecretSource looks up credentials supplied by the hosting environment.
type SecretSource interface {
	// Lookup returns the value of a named secret and whether it is set and non-empty.
	Lookup(name string) (string, bool)
}
