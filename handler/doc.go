// Package handler provides scoped per-file record producers. A handler
// wraps one opened OS handle: the text handler yields one record per line
// with normalized endings, the image handler yields a single decoded-image
// record per file. The extension registry lets file sources pick a handler
// per file kind, falling back to text for anything unregistered.
package handler
