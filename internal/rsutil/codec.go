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

package rsutil

import (
	"encoding/binary"
	"errors"
	"io"

	ringsig "github.com/mxhess/salvium-rs-sub001"
)

// HeaderSize is the length of the ring-size prefix of a full encoding.
const HeaderSize = 4

// CheckRingSize validates a ring size declared by an encoding.
func CheckRingSize(n uint32) error {
	switch {
	case n == 0:
		return ringsig.ErrRingTooSmall
	case n > ringsig.MaxRingSize:
		return ringsig.ErrRingTooLarge
	}
	return nil
}

// CheckLength compares a buffer length against the length an encoding
// requires.
func CheckLength(have, want int) error {
	switch {
	case have < want:
		return ringsig.ErrTruncated
	case have > want:
		return ringsig.ErrTrailingBytes
	}
	return nil
}

// CheckEncoding validates the ring-size prefix of b and its total length,
// given the number of keys per ring member and the number of trailing keys.
// It returns the declared ring size.
func CheckEncoding(b []byte, perMember, trailer int) (int, error) {
	if len(b) < HeaderSize {
		return 0, ringsig.ErrTruncated
	}
	n := binary.LittleEndian.Uint32(b)
	if err := CheckRingSize(n); err != nil {
		return 0, err
	}
	want := HeaderSize + (perMember*int(n)+trailer)*ringsig.KeySize
	if err := CheckLength(len(b), want); err != nil {
		return 0, err
	}
	return int(n), nil
}

// CheckPrunable validates the length of a transaction-embedded encoding for
// a ring of n members.
func CheckPrunable(b []byte, n, perMember, trailer int) error {
	if n <= 0 {
		return ringsig.ErrRingTooSmall
	}
	if n > ringsig.MaxRingSize {
		return ringsig.ErrRingTooLarge
	}
	return CheckLength(len(b), (perMember*n+trailer)*ringsig.KeySize)
}

// ReadError maps a short read to ErrTruncated.
func ReadError(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return ringsig.ErrTruncated
	}
	return err
}
