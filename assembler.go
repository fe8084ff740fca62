package morphdict

import "fmt"

// Assembler turns the typed views of each group into dictionary structures.
// Every method is called at most once per load, possibly concurrently with
// the others, and must only write the part of ds its group owns.
type Assembler interface {
	LoadTrie(ds *DictionarySet, base, check []int32) error
	LoadTokenInfo(ds *DictionarySet, tokenInfo, pos, targetMap []uint8) error
	LoadConnectionCosts(ds *DictionarySet, costs []int16) error
	LoadUnknown(ds *DictionarySet, unk, unkPos, unkMap, charMap []uint8,
		compatMap []uint32, invokeDef []uint8) error
}

// Builder is the default Assembler. It keeps the views as they are and only
// checks the structure it needs for lookups.
type Builder struct{}

func (Builder) LoadTrie(ds *DictionarySet, base, check []int32) error {
	if len(base) != len(check) {
		return fmt.Errorf("%w: base has %d nodes, check has %d",
			ErrMalformed, len(base), len(check))
	}
	ds.Trie = Trie{Base: base, Check: check}
	return nil
}

func (Builder) LoadTokenInfo(ds *DictionarySet, tokenInfo, pos, targetMap []uint8) error {
	ds.TokenInfo = TokenInfo{
		Entries:   tokenInfo,
		POS:       pos,
		TargetMap: targetMap,
	}
	return nil
}

func (Builder) LoadConnectionCosts(ds *DictionarySet, costs []int16) error {
	cc, err := NewConnectionCosts(costs)
	if err != nil {
		return err
	}
	ds.Costs = cc
	return nil
}

// NewConnectionCosts validates the matrix header of a cc.dat view.
func NewConnectionCosts(costs []int16) (ConnectionCosts, error) {
	if len(costs) < 2 {
		return ConnectionCosts{}, fmt.Errorf("%w: connection costs without header", ErrMalformed)
	}
	forward, backward := int(costs[0]), int(costs[1])
	if forward < 0 || backward < 0 || len(costs)-2 != forward*backward {
		return ConnectionCosts{}, fmt.Errorf("%w: %dx%d matrix with %d costs",
			ErrMalformed, forward, backward, len(costs)-2)
	}
	return ConnectionCosts{
		ForwardSize:  forward,
		BackwardSize: backward,
		buf:          costs,
	}, nil
}

func (Builder) LoadUnknown(ds *DictionarySet, unk, unkPos, unkMap, charMap []uint8,
	compatMap []uint32, invokeDef []uint8) error {
	ds.Unknown = Unknown{
		Entries:   unk,
		POS:       unkPos,
		TargetMap: unkMap,
		CharMap:   charMap,
		CompatMap: compatMap,
		InvokeDef: invokeDef,
	}
	return nil
}
