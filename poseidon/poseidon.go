// Poseidon permutation and sponge over the Goldilocks field. The backend uses
// it to fingerprint compiled circuits and to derive proof transcripts.
package poseidon

import (
	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/field/goldilocks"
)

func sBox(engine *goldilocks.Field, f constraint.Element) constraint.Element {
	// x^7
	x2 := engine.Mul(f, f)
	x4 := engine.Mul(x2, x2)
	x6 := engine.Mul(x4, x2)
	return engine.Mul(x6, f)
}

// Permute applies the full permutation to state in place.
// The state length must equal param.NumStates.
func Permute(param *Params, state []constraint.Element) {
	if len(state) != param.NumStates {
		panic("state length does not match the number of states in the Poseidon parameters")
	}
	engine := &goldilocks.Field{}

	// Applies the first half of full rounds.
	for i := 0; i < param.NumHalfFullRounds; i++ {
		for j := 0; j < param.NumStates; j++ {
			state[j] = engine.Add(state[j], engine.FromInterface(param.ExternalRoundConstant[j][i]))
		}
		applyMdsMatrix(engine, state, param.MdsMatrix)
		for j := 0; j < param.NumStates; j++ {
			state[j] = sBox(engine, state[j])
		}
	}

	// Applies the partial rounds.
	for i := 0; i < param.NumPartRounds; i++ {
		state[0] = engine.Add(state[0], engine.FromInterface(param.InternalRoundConstant[i]))
		applyMdsMatrix(engine, state, param.MdsMatrix)
		state[0] = sBox(engine, state[0])
	}

	// Applies the second half of full rounds.
	for i := param.NumHalfFullRounds; i < param.NumFullRounds; i++ {
		for j := 0; j < param.NumStates; j++ {
			state[j] = engine.Add(state[j], engine.FromInterface(param.ExternalRoundConstant[j][i]))
		}
		applyMdsMatrix(engine, state, param.MdsMatrix)
		for j := 0; j < param.NumStates; j++ {
			state[j] = sBox(engine, state[j])
		}
	}
}

// Hash absorbs the input in chunks of Rate elements, zero-padding the last
// chunk, and squeezes a HashSize-element digest.
func Hash(param *Params, input []constraint.Element) [HashSize]constraint.Element {
	engine := &goldilocks.Field{}
	state := make([]constraint.Element, param.NumStates)
	for start := 0; start < len(input) || start == 0; start += Rate {
		end := start + Rate
		if end > len(input) {
			end = len(input)
		}
		for j, v := range input[start:end] {
			state[j] = engine.Add(state[j], v)
		}
		Permute(param, state)
	}
	var out [HashSize]constraint.Element
	copy(out[:], state[:HashSize])
	return out
}

func applyMdsMatrix(engine *goldilocks.Field, state []constraint.Element, mds [][]uint64) {
	tmp := make([]constraint.Element, len(state))
	for i := 0; i < len(state); i++ {
		tmp[i] = engine.Mul(state[0], engine.FromInterface(mds[i][0]))
		for j := 1; j < len(state); j++ {
			tmp[i] = engine.Add(tmp[i], engine.Mul(state[j], engine.FromInterface(mds[i][j])))
		}
	}
	copy(state, tmp)
}

// Sponge is an incremental absorb/squeeze stream used for proof transcripts.
type Sponge struct {
	param  *Params
	engine goldilocks.Field
	state  []constraint.Element
	absorb int
}

func NewSponge(param *Params) *Sponge {
	return &Sponge{
		param: param,
		state: make([]constraint.Element, param.NumStates),
	}
}

func (s *Sponge) Absorb(v constraint.Element) {
	if s.absorb == Rate {
		Permute(s.param, s.state)
		s.absorb = 0
	}
	s.state[s.absorb] = s.engine.Add(s.state[s.absorb], v)
	s.absorb++
}

// Squeeze permutes and returns the first state element. Each call advances the
// stream, so successive calls yield independent challenges.
func (s *Sponge) Squeeze() constraint.Element {
	Permute(s.param, s.state)
	s.absorb = 0
	return s.state[0]
}
