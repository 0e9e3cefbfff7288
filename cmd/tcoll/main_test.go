package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tcoll/collection"
	"github.com/arloliu/tcoll/encoding"
	"github.com/arloliu/tcoll/errs"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()

	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	require.NoError(t, err)

	return out
}

func TestParse(t *testing.T) {
	out := mustRun(t, "parse", "--kind", "int32", "{5, NULL, 5}")
	require.Equal(t, "03000000"+"05"+"05000000"+"05000000"+"\n", out)

	out = mustRun(t, "parse", "--kind", "int32", "--compact=false", "--big-endian", "--count-size", "1", "{5, NULL}")
	require.Equal(t, "02"+"0100000005"+"0000000000"+"\n", out)
}

func TestParse_Stdin(t *testing.T) {
	out, err := run(t, `{"a", NULL, "b"}`, "parse", "--kind", "string", "--count-size", "1", "--item-size", "1")
	require.NoError(t, err)
	require.Equal(t, "03"+"0161"+"ff"+"0162"+"\n", out)
}

func TestParse_Errors(t *testing.T) {
	_, err := run(t, "", "parse", "{1}")
	require.ErrorContains(t, err, "element kind not set")

	_, err = run(t, "", "parse", "--kind", "decimal", "{1}")
	require.ErrorContains(t, err, "unknown element kind")

	_, err = run(t, "", "parse", "--kind", "int8", "{1, 300}")
	require.ErrorIs(t, err, errs.ErrFormat)

	_, err = run(t, "", "parse", "--kind", "int8", "--count-size", "3", "{1}")
	require.ErrorIs(t, err, errs.ErrInvalidSizeEncoding)
}

func TestFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ints.bin")

	out := mustRun(t, "parse", "--kind", "int64", "-o", path, "{-1, NULL, 7}")
	require.Empty(t, out)

	out = mustRun(t, "format", "--kind", "int64", path)
	require.Equal(t, "{-1, NULL, 7}\n", out)

	hexPath := filepath.Join(dir, "strs.hex")
	require.NoError(t, os.WriteFile(hexPath, []byte("03 0161\nff 0162\n"), 0o600))
	out = mustRun(t, "format", "--kind", "string", "--count-size", "1", "--item-size", "1", "--hex", hexPath)
	require.Equal(t, "{\"a\", NULL, \"b\"}\n", out)
}

func TestFormat_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x09, 0x00, 0x00, 0x00, 0x01}, 0o600))

	_, err := run(t, "", "format", "--kind", "int32", path)
	require.ErrorIs(t, err, errs.ErrCorrupted)
	require.ErrorContains(t, err, path)
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ints.bin")
	mustRun(t, "parse", "--kind", "int32", "-o", path, "{5, NULL, 5}")

	l, err := collection.NewFixed(encoding.Int32())
	require.NoError(t, err)
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	digest, err := l.Digest(buf)
	require.NoError(t, err)

	out := mustRun(t, "inspect", "--kind", "int32", path)
	require.Contains(t, out, "Int32 "+l.Params().String())
	require.Contains(t, out, path)
	require.Contains(t, out, fmt.Sprintf("%016x", digest))
	require.Contains(t, out, "PRESENCE")
}

func TestTranscode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	dst := filepath.Join(dir, "out.bin")

	mustRun(t, "parse", "--kind", "int32", "-o", in, "{5, NULL, 5}")
	out := mustRun(t, "transcode", "--kind", "int32",
		"--to-compact=false", "--to-big-endian", "--to-count-size", "1", in, dst)
	require.Empty(t, out)

	buf, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "03"+"0100000005"+"0000000000"+"0100000005", hex.EncodeToString(buf))

	out = mustRun(t, "format", "--kind", "int32", "--compact=false", "--big-endian", "--count-size", "1", dst)
	require.Equal(t, "{5, NULL, 5}\n", out)
}

func TestTranscode_Overflow(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.bin")
	lits := make([]string, 300)
	for i := range lits {
		lits[i] = "1"
	}
	mustRun(t, "parse", "--kind", "uint8", "-o", in, "{"+strings.Join(lits, ", ")+"}")

	_, err := run(t, "", "transcode", "--kind", "uint8", "--to-count-size", "1", in)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestTranscode_KindMismatch(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.bin")
	mustRun(t, "parse", "--kind", "int32", "-o", in, "{1}")

	_, err := run(t, "", "transcode", "--kind", "int32", "--to-kind", "string", in)
	require.ErrorIs(t, err, errs.ErrKindMismatch)
}

func TestTranscode_CompactOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slack.hex")
	require.NoError(t, os.WriteFile(path, []byte("0200000003050000000600000000ffff"), 0o600))

	out := mustRun(t, "transcode", "--kind", "int32", "--hex", "--compact-only", path)
	require.Equal(t, "02000000"+"03"+"05000000"+"06000000"+"\n", out)
}

func TestProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "strings.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("kind: string\ncount-size: 1\nitem-size: 1\n"), 0o600))

	out := mustRun(t, "parse", "--profile", profilePath, `{"a"}`)
	require.Equal(t, "01"+"0161"+"\n", out)

	// Flags override the profile.
	out = mustRun(t, "parse", "--profile", profilePath, "--item-size", "2", `{"a"}`)
	require.Equal(t, "01"+"010061"+"\n", out)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("kind: string\nwidth: 3\n"), 0o600))
	_, err := run(t, "", "parse", "--profile", bad, `{"a"}`)
	require.ErrorContains(t, err, "decode profile")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	out = mustRun(t, "parse", "--profile", empty, "--kind", "bool", "{true}")
	require.Equal(t, "01000000"+"01"+"01"+"\n", out)
}

func TestVerbose(t *testing.T) {
	out := mustRun(t, "parse", "-v", "--kind", "int32", "{}")
	require.Contains(t, out, "opened layout")
	require.Contains(t, out, "00000000\n")
}
