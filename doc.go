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

/*
	Package ringsig implements linkable ring signatures for confidential
	transactions. A ring signature proves that one member of a set of public
	keys (the ring) authorized a message without revealing which member. A
	linkable ring signature additionally publishes a key image: a value derived
	deterministically from the signer's secret key, so that two signatures by
	the same key can be detected without identifying the key.

	Overview

	Every transaction input spends one output while referencing a ring of
	decoy outputs. Each ring member carries a one-time public key and a
	Pedersen commitment to its amount. The signer also publishes a
	pseudo-output commitment to the same amount under a fresh mask, and the
	signature proves knowledge of the mask difference between the real
	commitment and the pseudo-output. The signing algorithm is of the
	following form:

		signature ← sign(message, ring, pseudoOut, spendKey)

	and verification:

		ok ← verify(message, signature, ring, pseudoOut)

	The message is a 32-byte hash of the transaction, computed by the caller.

	Schemes

	Two schemes are provided, in their own packages:

	• clsag: Concise Linkable Spontaneous Anonymous Group signatures, for ring
	members whose public keys have the form x·G.

	• tclsag: the twin-key extension, for ring members whose public keys have
	the form x·G + y·T for a second generator T. Only x enters the key image.

	Both schemes share the same Fiat-Shamir transcript: aggregation
	coefficients derived from the whole ring, and per-member round challenges
	that walk the ring from the signer's position back around to it.

	Encoding

	Signatures implement Exportable. The fixed binary layout is a little-endian
	uint32 ring size followed by the response scalars, the anchor challenge
	c1, the key image and the commitment image, 32 bytes each. The commitment
	image is stored divided by the cofactor 8, and verifiers multiply it back
	by 8.

	Randomness

	Signing takes an io.Reader as its randomness source. Passing nil selects
	crypto/rand. Tests substitute deterministic readers.
*/
package ringsig
