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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mxhess/salvium-rs-sub001/internal/vectors"
)

func generateCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "generate",
		Short: "Generates a vector from a seed",
		Args:  cobra.NoArgs,
		RunE:  generateFunc,
	}
	addGenerateFlags(c.Flags())
	return c
}

func generateFunc(c *cobra.Command, _ []string) error {
	config, err := parseGenerateFlags(c.Flags())
	if err != nil {
		return err
	}
	log, err := newLogger(config.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	v, err := vectors.Generate(config.Scheme, config.Seed, config.RingSize, config.Index, config.Message)
	if err != nil {
		return err
	}
	log.Debug("generated vector",
		zap.String("scheme", v.Scheme),
		zap.String("seed", v.Seed),
		zap.Int("ringSize", len(v.Ring)),
		zap.String("keyImage", v.KeyImage),
	)

	if config.Output == stdoutMarker {
		return writeVector(c.OutOrStdout(), v)
	}
	f, err := os.Create(config.Output)
	if err != nil {
		return err
	}
	if err := writeVector(f, v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", config.Output, err)
	}
	return nil
}

func writeVector(w io.Writer, v *vectors.Vector) error {
	if err := vectors.Write(w, []vectors.Vector{*v}); err != nil {
		return fmt.Errorf("writing vector: %w", err)
	}
	return nil
}

func checkCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "check",
		Short: "Checks every vector in a file",
		Args:  cobra.NoArgs,
		RunE:  checkFunc,
	}
	addCheckFlags(c.Flags())
	return c
}

func checkFunc(c *cobra.Command, _ []string) error {
	config, err := parseCheckFlags(c.Flags())
	if err != nil {
		return err
	}
	log, err := newLogger(config.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	vs, err := vectors.LoadFile(config.File)
	if err != nil {
		return err
	}
	failed := 0
	for i := range vs {
		if err := vectors.Check(&vs[i]); err != nil {
			failed++
			log.Error("vector failed",
				zap.Int("vector", i),
				zap.String("seed", vs[i].Seed),
				zap.Error(err),
			)
			continue
		}
		log.Debug("vector passed",
			zap.Int("vector", i),
			zap.String("scheme", vs[i].Scheme),
			zap.String("seed", vs[i].Seed),
		)
	}
	log.Info("checked vectors",
		zap.String("file", config.File),
		zap.Int("total", len(vs)),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d vectors failed", failed, len(vs))
	}
	return nil
}
