// Package cgo groups the native bindings. Only cgo/tesseract exists today;
// it compiles against libtesseract under the "tesseract" build tag and
// falls back to a stub that reports itself unavailable.
package cgo
