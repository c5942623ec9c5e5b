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

package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxhess/salvium-rs-sub001/internal/vectors"
)

func run(args ...string) (string, error) {
	c := rootCommand()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	_, err := run("check", "--file", "../../testdata/vectors.json")
	require.NoError(t, err)
}

func TestGenerateThenCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vector.json")
	_, err := run("generate", "--scheme", "tclsag", "--seed", "cli seed", "--ring-size", "3", "--index", "1", "--message", "cli", "--out", path)
	require.NoError(t, err)

	vs, err := vectors.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "tclsag", vs[0].Scheme)
	assert.Len(t, vs[0].Ring, 3)

	_, err = run("check", "--verbose", "--file", path)
	require.NoError(t, err)
}

func TestGenerateStdout(t *testing.T) {
	out, err := run("generate", "--seed", "clsag ring 11")
	require.NoError(t, err)
	vs, err := vectors.Load(bytes.NewBufferString(out))
	require.NoError(t, err)

	want, err := vectors.LoadFile("../../testdata/vectors.json")
	require.NoError(t, err)
	// The defaults reproduce the ring of eleven vector.
	assert.Equal(t, want[4], vs[0])
}

func TestGenerateErrors(t *testing.T) {
	_, err := run("generate")
	assert.ErrorIs(t, err, errMissingSeed)
	_, err = run("generate", "--seed", "s", "--scheme", "mlsag")
	assert.ErrorIs(t, err, vectors.ErrUnknownScheme)
	_, err = run("check", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteVectorErrors(t *testing.T) {
	v, err := vectors.Generate("clsag", "writer", 2, 0, "m")
	require.NoError(t, err)
	assert.Error(t, writeVector(failingWriter{}, v))

	var buf bytes.Buffer
	require.NoError(t, writeVector(&buf, v))
	assert.NotZero(t, buf.Len())

	_, err = run("generate", "--seed", "s", "--out", filepath.Join(t.TempDir(), "missing", "vector.json"))
	assert.Error(t, err)
}
