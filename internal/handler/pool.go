package handler

import (
	"bytes"
	"sync"
)

const (
	// A five-card draw response with its entropy record encodes to roughly
	// 900 bytes, so 1 KiB avoids a regrow on the hot open path.
	bufferPreallocBytes = 1024

	// Buffers that grew past this (large security-event pages) are dropped
	// instead of pooled so one big response cannot pin memory forever.
	bufferRetainLimitBytes = 64 << 10
)

// bufferPool recycles encode buffers across responses. Every draw and
// verify response is staged here before it touches the wire.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, bufferPreallocBytes))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > bufferRetainLimitBytes {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
