package ws

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

var writerPool = sync.Pool{
	New: func() any {
		w, _ := zlib.NewWriterLevel(nil, zlib.BestSpeed)
		return w
	},
}

// Compress deflates an outgoing frame. Notification payloads are small, so
// speed wins over ratio.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := writerPool.Get().(*zlib.Writer)
	defer writerPool.Put(w)

	w.Reset(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
