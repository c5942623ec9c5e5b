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
	"errors"

	"github.com/spf13/pflag"
)

const (
	VerboseKey   = "verbose"
	SchemeKey    = "scheme"
	SeedKey      = "seed"
	RingSizeKey  = "ring-size"
	IndexKey     = "index"
	MessageKey   = "message"
	OutputKey    = "out"
	FileKey      = "file"
	DefaultFile  = "testdata/vectors.json"
	stdoutMarker = "-"
)

var errMissingSeed = errors.New("a seed is required")

func addGenerateFlags(flags *pflag.FlagSet) {
	flags.String(SchemeKey, "clsag", "Signature scheme (clsag or tclsag)")
	flags.String(SeedKey, "", "Seed of the Keccak stream that drives the vector (required)")
	flags.Int(RingSizeKey, 11, "Number of ring members")
	flags.Int(IndexKey, 5, "Position of the real signer in the ring")
	flags.String(MessageKey, "test ring 11", "Message whose Keccak-256 hash is signed")
	flags.String(OutputKey, stdoutMarker, "File to write the vector to, or - for stdout")
}

type generateConfig struct {
	Verbose  bool
	Scheme   string
	Seed     string
	RingSize int
	Index    int
	Message  string
	Output   string
}

func parseGenerateFlags(flags *pflag.FlagSet) (*generateConfig, error) {
	verbose, err := flags.GetBool(VerboseKey)
	if err != nil {
		return nil, err
	}
	scheme, err := flags.GetString(SchemeKey)
	if err != nil {
		return nil, err
	}
	seed, err := flags.GetString(SeedKey)
	if err != nil {
		return nil, err
	}
	if seed == "" {
		return nil, errMissingSeed
	}
	ringSize, err := flags.GetInt(RingSizeKey)
	if err != nil {
		return nil, err
	}
	index, err := flags.GetInt(IndexKey)
	if err != nil {
		return nil, err
	}
	message, err := flags.GetString(MessageKey)
	if err != nil {
		return nil, err
	}
	output, err := flags.GetString(OutputKey)
	if err != nil {
		return nil, err
	}
	return &generateConfig{
		Verbose:  verbose,
		Scheme:   scheme,
		Seed:     seed,
		RingSize: ringSize,
		Index:    index,
		Message:  message,
		Output:   output,
	}, nil
}

func addCheckFlags(flags *pflag.FlagSet) {
	flags.String(FileKey, DefaultFile, "JSON file of vectors to check")
}

type checkConfig struct {
	Verbose bool
	File    string
}

func parseCheckFlags(flags *pflag.FlagSet) (*checkConfig, error) {
	verbose, err := flags.GetBool(VerboseKey)
	if err != nil {
		return nil, err
	}
	file, err := flags.GetString(FileKey)
	if err != nil {
		return nil, err
	}
	return &checkConfig{Verbose: verbose, File: file}, nil
}
