// Package events provides the event types and emitter used to decouple
// services from background task creation. Services emit TaskRequestEvents;
// the task package's handler turns them into stored tasks.
package events
