// Package wordbank loads the source vocabulary list for a quiz session.
// A word bank is a JSON document of the form {"words": [{"word": "..."}]}
// read from disk or fetched over HTTP, validated against a JSON schema and
// replaced wholesale on every load.
package wordbank
