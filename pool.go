package prettylog

import (
	"bytes"
	"sync"
)

const maxScratchCap = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func acquireBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func releaseBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxScratchCap {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
