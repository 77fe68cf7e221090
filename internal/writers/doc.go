// Package writers turns a stream of scan reports into json, jsonl or text.
// Every writer runs in its own goroutine fed by a channel; the error channel
// yields exactly one value once the input channel is closed and drained.
package writers
