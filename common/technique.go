package common

// Technique carries vendor-specific data under a named profile. Consumers
// pick a technique whose profile they understand and are free to ignore the
// rest; the contents are preserved as opaque fragments and never validated.
type Technique struct {
	// Profile names the platform or capability target for the technique.
	Profile string

	// XMLNS optionally names the schema for the technique's contents.
	XMLNS string

	// Data holds the technique's contents as opaque markup.
	Data []*Fragment
}
