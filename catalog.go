package morphdict

import (
	"fmt"
	"strings"
)

// ResourceID names one binary artifact inside a dictionary location.
type ResourceID string

// ElementType is the integer type a resource is reinterpreted as.
type ElementType int

const (
	Uint8 ElementType = iota
	Int16
	Int32
	Uint32
)

// Size returns the element width in bytes.
func (t ElementType) Size() int {
	switch t {
	case Uint8:
		return 1
	case Int16:
		return 2
	case Int32, Uint32:
		return 4
	}
	return 0
}

func (t ElementType) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	}
	return fmt.Sprintf("ElementType(%d)", int(t))
}

type Resource struct {
	ID   ResourceID
	Type ElementType
}

// Group is a set of resources consumed together by one assembler call.
type Group struct {
	Name      string
	Resources []Resource

	apply func(Assembler, *DictionarySet, []View) error
}

const (
	GroupTrie           = "trie"
	GroupTokenInfo      = "token-info"
	GroupConnectionCost = "connection-cost"
	GroupUnknown        = "unknown"
)

// Catalog returns the four resource groups of a dictionary, in load order.
// Every group writes a different part of DictionarySet.
func Catalog() []Group {
	return []Group{
		{
			Name: GroupTrie,
			Resources: []Resource{
				{"base.dat", Int32},
				{"check.dat", Int32},
			},
			apply: func(a Assembler, ds *DictionarySet, v []View) error {
				if err := a.LoadTrie(ds, v[0].Int32(), v[1].Int32()); err != nil {
					return err
				}
				ds.Trie.loaded = true
				return nil
			},
		},
		{
			Name: GroupTokenInfo,
			Resources: []Resource{
				{"tid.dat", Uint8},
				{"tid_pos.dat", Uint8},
				{"tid_map.dat", Uint8},
			},
			apply: func(a Assembler, ds *DictionarySet, v []View) error {
				if err := a.LoadTokenInfo(ds, v[0].Uint8(), v[1].Uint8(), v[2].Uint8()); err != nil {
					return err
				}
				ds.TokenInfo.loaded = true
				return nil
			},
		},
		{
			Name: GroupConnectionCost,
			Resources: []Resource{
				{"cc.dat", Int16},
			},
			apply: func(a Assembler, ds *DictionarySet, v []View) error {
				if err := a.LoadConnectionCosts(ds, v[0].Int16()); err != nil {
					return err
				}
				ds.Costs.loaded = true
				return nil
			},
		},
		{
			Name: GroupUnknown,
			Resources: []Resource{
				{"unk.dat", Uint8},
				{"unk_pos.dat", Uint8},
				{"unk_map.dat", Uint8},
				{"unk_char.dat", Uint8},
				{"unk_compat.dat", Uint32},
				{"unk_invoke.dat", Uint8},
			},
			apply: func(a Assembler, ds *DictionarySet, v []View) error {
				err := a.LoadUnknown(ds, v[0].Uint8(), v[1].Uint8(), v[2].Uint8(),
					v[3].Uint8(), v[4].Uint32(), v[5].Uint8())
				if err != nil {
					return err
				}
				ds.Unknown.loaded = true
				return nil
			},
		},
	}
}

// Resolve joins a dictionary location (directory, url prefix or key prefix)
// and a resource id with a single slash.
func Resolve(location string, id ResourceID) string {
	if location == "" {
		return string(id)
	}
	return strings.TrimSuffix(location, "/") + "/" + string(id)
}
