package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T) string {
	t.Helper()
	le := func(v ...int32) []byte {
		buf := make([]byte, 4*len(v))
		for i, n := range v {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(n))
		}
		return buf
	}
	files := map[string][]byte{
		"base.dat":       le(1, 2),
		"check.dat":      le(3, 4),
		"tid.dat":        {1},
		"tid_pos.dat":    {2},
		"tid_map.dat":    {3},
		"cc.dat":         {1, 0, 1, 0, 7, 0},
		"unk.dat":        {1},
		"unk_pos.dat":    {1},
		"unk_map.dat":    {1},
		"unk_char.dat":   {1},
		"unk_compat.dat": le(1),
		"unk_invoke.dat": {1},
	}
	dir := t.TempDir()
	for name, data := range files {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".gz"), buf.Bytes(), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", writeDict(t))
	require.NoError(t, err)
	require.Contains(t, out, "2 nodes")
	require.Contains(t, out, "1x1 matrix")
	require.NotContains(t, out, "missing")
}

func TestInspectMissing(t *testing.T) {
	_, err := run(t, "inspect", filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
}

func TestPackThenInspect(t *testing.T) {
	kvDir := filepath.Join(t.TempDir(), "dict.kv")
	out, err := run(t, "pack", writeDict(t), "--to", kvDir, "--prefix", "ipadic")
	require.NoError(t, err)
	require.Contains(t, out, "packed")

	cfg := filepath.Join(t.TempDir(), "kv.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("source: kv\nlocation: ipadic\nkv:\n  dir: "+kvDir+"\n"), 0o644))
	out, err = run(t, "--config", cfg, "inspect")
	require.NoError(t, err)
	require.Contains(t, out, "2 nodes")
}
