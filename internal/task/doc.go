// Package task implements background task processing: a registry of named
// notification emitters, a dispatcher that runs one emitter to completion
// per invocation while containing every failure, and a store-backed runner
// with a worker pool that feeds the dispatcher.
package task
