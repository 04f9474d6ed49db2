// Package speech defines the text-to-speech stage contract.
//
// Backends live in sub-packages (speech/openai) and return the encoded
// audio bytes untouched; callers persist them with Response.Extension.
package speech
