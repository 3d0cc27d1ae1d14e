// Package textutil provides small text helpers shared by the search guide,
// council lookup and billboard filters.
//
// Fingerprints are term-frequency vectors over lowercase alphanumeric tokens
// of three or more characters; CosineSimilarity compares two of them. Title
// cases display strings with golang.org/x/text.
package textutil
