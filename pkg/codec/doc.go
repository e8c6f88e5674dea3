// Package codec serializes machines with string labels to YAML and JSON
// documents and back.
//
// A Document is untrusted data: the only way to obtain a machine from it is
// Document.Build, which runs the full construction validation.
package codec
