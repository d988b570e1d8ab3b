// internal/nodeid/doc.go

/*
Package nodeid generates and validates node identifiers.

An identifier is an opaque string over the alphabet `[A-Za-z0-9_-]`.
Generated identifiers are 16 characters long and drawn from random UUID
bytes, so they are safe to use as map keys, file names and HCL labels.
*/
package nodeid
