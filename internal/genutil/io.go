// Copyright © 2015 Nik Unger
//
// This file is part of ringsig.
//
// Ringsig is free software: you can redistribute it and/or modify it under the
// terms of the GNU Lesser General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Ringsig is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Lesser General Public License for more
// details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with ringsig. If not, see <http://www.gnu.org/licenses/>.

package genutil

import (
	"bytes"
	"encoding/binary"
	"io"
)

func ConvertToBytes(wt io.WriterTo) []byte {
	buf := new(bytes.Buffer)
	wt.WriteTo(buf)
	return buf.Bytes()
}

// Writer encodes fixed-width little-endian fields.
type Writer struct {
	w     io.Writer
	count int64
	err   error
}

// NewWriter returns a writer of fixed-width little-endian fields. The first
// error sticks and later writes become no-ops.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (bw *Writer) Write(p []byte) (int, error) {
	if bw.err != nil {
		return 0, bw.err
	}
	n, err := bw.w.Write(p)
	bw.count += int64(n)
	bw.err = err
	return n, err
}

func (bw *Writer) Uint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	bw.Write(buf[:])
}

func (bw *Writer) Key(k [32]byte) { bw.Write(k[:]) }

func (bw *Writer) Count() int64 { return bw.count }
func (bw *Writer) Err() error   { return bw.err }

// Reader decodes fixed-width little-endian fields.
type Reader struct {
	r   io.Reader
	err error
}

// NewReader returns a reader of fixed-width little-endian fields. A short
// read is reported as io.ErrUnexpectedEOF.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (br *Reader) read(p []byte) bool {
	if br.err == nil {
		if _, err := io.ReadFull(br.r, p); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			br.err = err
		}
	}
	return br.err == nil
}

func (br *Reader) Uint32() uint32 {
	var buf [4]byte
	if !br.read(buf[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

func (br *Reader) Key() (k [32]byte) {
	br.read(k[:])
	return
}

func (br *Reader) Err() error { return br.err }
