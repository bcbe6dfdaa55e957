// Package envfile lints plaintext secrets files.
//
// A secrets file is line-oriented KEY=VALUE text terminated by a newline.
// Validate reports errors (which make the file invalid) and warnings
// (which do not). It is advisory: quoting, multiline values and variable
// interpolation are not understood.
package envfile
