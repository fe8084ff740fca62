package morphdict

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// DictionarySet is filled by the four resource groups concurrently. Each
// group owns exactly one of the parts below, so the parts are written
// without locking.
type DictionarySet struct {
	Trie      Trie
	TokenInfo TokenInfo
	Costs     ConnectionCosts
	Unknown   Unknown
}

// Trie is the double-array trie, base and check have the same length.
type Trie struct {
	Base   []int32
	Check  []int32
	loaded bool
}

func (t *Trie) Size() int {
	return len(t.Base)
}

type TokenInfo struct {
	Entries   []byte
	POS       []byte
	TargetMap []byte
	loaded    bool
}

// ConnectionCosts is the cost matrix, stored with its two dimensions as
// a header: [forward, backward, costs...].
type ConnectionCosts struct {
	ForwardSize  int
	BackwardSize int
	buf          []int16
	loaded       bool
}

// Cost returns the connection cost between a forward (right context) id and a
// backward (left context) id.
func (c *ConnectionCosts) Cost(forward, backward int) int16 {
	return c.buf[forward*c.BackwardSize+backward+2]
}

func (c *ConnectionCosts) Size() int {
	return c.ForwardSize * c.BackwardSize
}

type Unknown struct {
	Entries   []byte
	POS       []byte
	TargetMap []byte
	// character category definitions
	CharMap   []byte
	CompatMap []uint32
	InvokeDef []byte
	loaded    bool
}

func newDictionarySet() *DictionarySet {
	return &DictionarySet{}
}

// Ready reports whether every group has been assembled. A set returned with
// a load error is never ready.
func (ds *DictionarySet) Ready() bool {
	return ds != nil &&
		ds.Trie.loaded &&
		ds.TokenInfo.loaded &&
		ds.Costs.loaded &&
		ds.Unknown.loaded
}

// Summary describes the loaded parts, one per line.
func (ds *DictionarySet) Summary() string {
	var lines []string
	add := func(name string, loaded bool, format string, a ...any) {
		state := "missing"
		if loaded {
			state = fmt.Sprintf(format, a...)
		}
		lines = append(lines, fmt.Sprintf("%-16s %s", name, state))
	}
	add(GroupTrie, ds.Trie.loaded, "%d nodes (%s)",
		ds.Trie.Size(), size(4*(len(ds.Trie.Base)+len(ds.Trie.Check))))
	add(GroupTokenInfo, ds.TokenInfo.loaded, "entries %s, pos %s, map %s",
		size(len(ds.TokenInfo.Entries)), size(len(ds.TokenInfo.POS)),
		size(len(ds.TokenInfo.TargetMap)))
	add(GroupConnectionCost, ds.Costs.loaded, "%dx%d matrix",
		ds.Costs.ForwardSize, ds.Costs.BackwardSize)
	add(GroupUnknown, ds.Unknown.loaded, "entries %s, char map %s, %d compat categories",
		size(len(ds.Unknown.Entries)), size(len(ds.Unknown.CharMap)),
		len(ds.Unknown.CompatMap))
	return strings.Join(lines, "\n")
}

func size(n int) string {
	return humanize.Bytes(uint64(n))
}
