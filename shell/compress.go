// Copyright 2026 The Places Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shell

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

func extension(encoding string) string {
	if encoding == EncodingBrotli {
		return ".br"
	}
	return ".gz"
}

// compress encodes data with the configured level for encoding.
func (s *Shell) compress(encoding string, data []byte) ([]byte, error) {
	var (
		buf bytes.Buffer
		w   io.WriteCloser
		err error
	)
	switch encoding {
	case EncodingBrotli:
		w = brotli.NewWriterLevel(&buf, s.config.brotliLevel)
	case EncodingGzip:
		w, err = gzip.NewWriterLevel(&buf, s.config.gzipLevel)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}

	if _, err = w.Write(data); err != nil {
		return nil, fmt.Errorf("%s: %w", encoding, err)
	}
	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", encoding, err)
	}
	return buf.Bytes(), nil
}
