package proxy

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"log/slog"
)

func newEncodedReader(enc string, r io.ReadCloser) (io.ReadCloser, error) {
	switch enc {
	case "":
		return r, nil
	case "gzip":
		return gzip.NewReader(r)
	case "deflate":
		return zlib.NewReader(r)
	case "compress", "br":
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	default:
		slog.Warn("unknown encoding", "enc", enc)
		return r, nil
	}
}

// decodeBody returns the decoded form of an already captured body. The raw
// bytes stay with the in-flight response; only the observation needs the
// plain text.
func decodeBody(enc string, raw []byte) ([]byte, error) {
	d, err := newEncodedReader(enc, io.NopCloser(bytes.NewReader(raw)))
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	bs, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}

	if err := d.Close(); err != nil {
		slog.Warn("could not close reader", "err", err)
	}

	return bs, nil
}
