// Package uniuri generates random strings from a fixed alphabet without modulo bias.
// The front-end uses it for CSRF tokens.
package uniuri
