// Package prompt edits settings panels from a terminal.
//
// Answers are gathered into the same panel$name field map a browser posts
// and applied with Panel.Apply, so an unchecked toggle resets and an
// unchanged password survives exactly as it does on the web form.
package prompt
