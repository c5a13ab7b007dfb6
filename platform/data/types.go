package data

// Types names the kind of value an evaluation produced.
type Types string

const (
	NONE     Types = "none"
	NULL     Types = "null"
	BOOL     Types = "bool"
	FLOAT    Types = "float"
	STRING   Types = "string"
	MAP      Types = "map"
	LIST     Types = "list"
	FUNCTION Types = "function"
	OPAQUE   Types = "opaque"
)
