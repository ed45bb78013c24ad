// Package fri models the shape of a FRI opening proof: the protocol parameters
// that determine its geometry, the proof object in its valued, wire (target)
// and variable forms, and the parameter-driven structuring of a flat slot
// stream into a proof. The folding math itself belongs to the proving backend.
package fri

import "errors"

// ErrGeometry signals that the supplied protocol parameters cannot describe a
// well-formed proof. It always reflects a mismatch between the proof producer
// and the party structuring it, so it is never recovered from.
var ErrGeometry = errors.New("fri: proof geometry does not match parameters")

type Config struct {
	RateBits        int
	CapHeight       int
	ProofOfWorkBits int
	NumQueryRounds  int
}

// DefaultConfig mirrors the standard recursion configuration of the backend.
func DefaultConfig() Config {
	return Config{
		RateBits:        3,
		CapHeight:       4,
		ProofOfWorkBits: 16,
		NumQueryRounds:  28,
	}
}

type Params struct {
	Config             Config
	Hiding             bool
	DegreeBits         int
	ReductionArityBits []int
}

func (p *Params) TotalArities() int {
	res := 0
	for _, b := range p.ReductionArityBits {
		res += b
	}
	return res
}

func (p *Params) MaxArityBits() int {
	res := 0
	for _, b := range p.ReductionArityBits {
		if b > res {
			res = b
		}
	}
	return res
}

func (p *Params) LdeBits() int {
	return p.DegreeBits + p.Config.RateBits
}

func (p *Params) LdeSize() int {
	return 1 << p.LdeBits()
}

func (p *Params) FinalPolyBits() int {
	return p.DegreeBits - p.TotalArities()
}

func (p *Params) FinalPolyLen() int {
	return 1 << p.FinalPolyBits()
}
