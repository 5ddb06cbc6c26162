// Package watch reports edits to shader source files so the owner of a GL
// context can relink. Callbacks run on a timer goroutine; they should only
// signal the thread that owns the context.
package watch
