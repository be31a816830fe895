// Package transform provides the built-in record transforms: payload
// rewrites, regex filters, substitution, blank-line squeezing, word
// fan-out, and image adjustments.
//
// Text transforms act on string payloads and pass records with other
// payload shapes through unchanged, so a chain mixing text and image
// records stays usable. Image transforms require an image payload and
// fail on anything else.
package transform
