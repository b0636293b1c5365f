// Package teams delivers governance notifications to a Microsoft Teams
// incoming webhook. It defines one emitter per task kind; emitters decode
// their named arguments from the dispatch payload and post a MessageCard.
package teams
