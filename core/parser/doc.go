// Package parser reads mark sheets into a model.Dataset.
//
// The first line holds the declared student count and the coursework weight,
// every following non-empty line holds a registration number, an exam mark
// and a coursework mark. Tokens are separated by any run of whitespace:
//
//	3 20
//	1001   60 80
//	1002 30 90
//	1003 70  0
package parser
