package morphdict

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func int32Bytes(v ...int32) []byte {
	buf := make([]byte, 4*len(v))
	for i, n := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(n))
	}
	return buf
}

func uint32Bytes(v ...uint32) []byte {
	buf := make([]byte, 4*len(v))
	for i, n := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], n)
	}
	return buf
}

func int16Bytes(v ...int16) []byte {
	buf := make([]byte, 2*len(v))
	for i, n := range v {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(n))
	}
	return buf
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// testArtifacts is a small but consistent artifact set, keyed by resource id.
func testArtifacts() map[ResourceID][]byte {
	return map[ResourceID][]byte{
		"base.dat":       int32Bytes(1, 2, 3, 4),
		"check.dat":      int32Bytes(5, 6, 7, 8),
		"tid.dat":        []byte{1, 2, 3},
		"tid_pos.dat":    []byte("名詞,一般"),
		"tid_map.dat":    []byte{9, 8},
		"cc.dat":         int16Bytes(2, 3, 10, -20, 30, -40, 50, -60),
		"unk.dat":        []byte{4},
		"unk_pos.dat":    []byte{5, 5},
		"unk_map.dat":    []byte{6},
		"unk_char.dat":   []byte{7, 7, 7},
		"unk_compat.dat": uint32Bytes(0xdeadbeef, 1),
		"unk_invoke.dat": []byte{1, 0, 1},
	}
}

// stubSource serves artifacts under a location and records every request.
type stubSource struct {
	mu       sync.Mutex
	location string
	files    map[ResourceID][]byte
	fail     map[ResourceID]error
	delay    map[ResourceID]time.Duration
	gate     map[ResourceID]chan struct{}
	calls    []ResourceID
}

func newStubSource(location string) *stubSource {
	return &stubSource{
		location: location,
		files:    testArtifacts(),
		fail:     make(map[ResourceID]error),
		delay:    make(map[ResourceID]time.Duration),
		gate:     make(map[ResourceID]chan struct{}),
	}
}

func (s *stubSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	var id ResourceID
	for k := range s.files {
		if Resolve(s.location, k) == name {
			id = k
		}
	}
	s.calls = append(s.calls, id)
	data, ok := s.files[id]
	err := s.fail[id]
	delay := s.delay[id]
	gate := s.gate[id]
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

func (s *stubSource) requested() []ResourceID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ResourceID(nil), s.calls...)
}

// recorder counts assembler calls and keeps the trie views it received.
type recorder struct {
	Builder
	mu    sync.Mutex
	calls map[string]int
	base  []int32
	check []int32
}

func newRecorder() *recorder {
	return &recorder{calls: make(map[string]int)}
}

func (r *recorder) hit(name string) {
	r.mu.Lock()
	r.calls[name]++
	r.mu.Unlock()
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *recorder) LoadTrie(ds *DictionarySet, base, check []int32) error {
	r.hit(GroupTrie)
	r.mu.Lock()
	r.base, r.check = base, check
	r.mu.Unlock()
	return r.Builder.LoadTrie(ds, base, check)
}

func (r *recorder) LoadTokenInfo(ds *DictionarySet, tokenInfo, pos, targetMap []uint8) error {
	r.hit(GroupTokenInfo)
	return r.Builder.LoadTokenInfo(ds, tokenInfo, pos, targetMap)
}

func (r *recorder) LoadConnectionCosts(ds *DictionarySet, costs []int16) error {
	r.hit(GroupConnectionCost)
	return r.Builder.LoadConnectionCosts(ds, costs)
}

func (r *recorder) LoadUnknown(ds *DictionarySet, unk, unkPos, unkMap, charMap []uint8,
	compatMap []uint32, invokeDef []uint8) error {
	r.hit(GroupUnknown)
	return r.Builder.LoadUnknown(ds, unk, unkPos, unkMap, charMap, compatMap, invokeDef)
}

// receive waits for the single outcome of a load and checks the channel is
// closed right after it.
func receive(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	var out Outcome
	select {
	case o, ok := <-ch:
		require.True(t, ok, "no outcome sent")
		out = o
	case <-time.After(5 * time.Second):
		t.Fatal("load did not complete")
	}
	select {
	case _, ok := <-ch:
		require.False(t, ok, "second outcome sent")
	case <-time.After(5 * time.Second):
		t.Fatal("outcome channel not closed")
	}
	return out
}
