package compdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	entry, err := ParseLine("zig clang foo.c -O2 -Wall -MT foo.o -c -o foo.o foo.c", "/proj")
	require.NoError(t, err)
	assert.Equal(t, &Entry{
		Arguments: []string{"clang++", "-O2", "-Wall", "-c", "-o", "foo.o", "foo.c"},
		Directory: "/proj",
		File:      "/proj/foo.c",
		Output:    "/proj/foo.o",
	}, entry)
}

func TestParseLineNotRecognised(t *testing.T) {
	for _, line := range []string{
		"gcc foo.c -o foo.o",
		"zig clang foo.c -c -o foo.o",
		"zig clang foo.c -O2 -MT foo.o -c",
		"zig clang foo.c -O2 -MT foo.o -c -o",
		"zig cc foo.c -MT foo.o -c -o foo.o",
		"Zig clang foo.c -MT foo.o -c -o foo.o",
		"zig clang",
		"zig",
		"clang zig foo.c -MT foo.o -o foo.o",
	} {
		t.Run(line, func(t *testing.T) {
			entry, err := ParseLine(line, "/proj")
			assert.NoError(t, err)
			assert.Nil(t, entry)
		})
	}
}

func TestParseLineBlanksAndComments(t *testing.T) {
	for _, line := range []string{
		"",
		"   ",
		"\t\r\n",
		"# zig clang foo.c -MT foo.o -c -o foo.o",
		"    # indented comment",
		"#\xff\xfe not utf-8 but still a comment",
	} {
		entry, err := ParseLine(line, "/proj")
		assert.NoError(t, err)
		assert.Nil(t, entry)
	}
}

func TestParseLineZigSubstring(t *testing.T) {
	entry, err := ParseLine("/opt/zig-0.11/zig clang a.c -MT a.o -c -o a.o", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"clang++", "-c", "-o", "a.o", "a.c"}, entry.Arguments)
}

func TestParseLineArbitraryWhitespace(t *testing.T) {
	entry, err := ParseLine("  zig\tclang   foo.c  -O2\t-MT foo.o   -c -o  foo.o foo.c\r\n", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"clang++", "-O2", "-c", "-o", "foo.o", "foo.c"}, entry.Arguments)
}

func TestParseLineDropsEverythingFromMT(t *testing.T) {
	entry, err := ParseLine("zig clang foo.c -O2 -MT foo.o -MD -MF foo.d -DLATE -c -o out/foo.o foo.c", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"clang++", "-O2", "-c", "-o", "out/foo.o", "foo.c"}, entry.Arguments)
	assert.Equal(t, "/proj/out/foo.o", entry.Output)
}

func TestParseLineOutputBeforeMT(t *testing.T) {
	// The first -o wins even when it's before -MT and is otherwise dropped from the flags.
	entry, err := ParseLine("zig clang foo.c -o early.o -MT foo.o -c -o late.o", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"clang++", "-o", "early.o", "-c", "-o", "early.o", "foo.c"}, entry.Arguments)
	assert.Equal(t, "/proj/early.o", entry.Output)
}

func TestParseLineMTImmediatelyAfterSource(t *testing.T) {
	entry, err := ParseLine("zig clang foo.c -MT foo.o -c -o foo.o", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"clang++", "-c", "-o", "foo.o", "foo.c"}, entry.Arguments)
}

func TestParseLineMTAsSource(t *testing.T) {
	// Degenerate, but mustn't blow up.
	entry, err := ParseLine("zig clang -MT foo.o -o foo.o", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"clang++", "-c", "-o", "foo.o", "-MT"}, entry.Arguments)
}

func TestParseLineAbsolutePaths(t *testing.T) {
	entry, err := ParseLine("zig clang /src/foo.c -MT foo.o -c -o /out/foo.o", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "/src/foo.c", entry.File)
	assert.Equal(t, "/out/foo.o", entry.Output)
	assert.Equal(t, "/proj", entry.Directory)
}

func TestParseLineRelativeDirectory(t *testing.T) {
	entry, err := ParseLine("zig clang src/foo.c -MT foo.o -c -o foo.o", "build")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "build", entry.Directory)
	assert.Equal(t, "build/src/foo.c", entry.File)
	assert.Equal(t, "build/foo.o", entry.Output)
}

func TestParseLineDeterministic(t *testing.T) {
	const line = "zig clang foo.c -O2 -Wall -MT foo.o -c -o foo.o foo.c"
	a, err := ParseLine(line, "/proj")
	require.NoError(t, err)
	b, err := ParseLine(line, "/proj")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	a.Arguments[0] = "mutated"
	assert.Equal(t, "clang++", b.Arguments[0])
}

func TestParseLineInvalidUTF8(t *testing.T) {
	entry, err := ParseLine("zig clang f\xffoo.c -MT foo.o -c -o foo.o", "/proj")
	assert.Error(t, err)
	assert.Nil(t, entry)
}

func TestParserCompilerAndExtraArgs(t *testing.T) {
	p := &Parser{Compiler: "clang", ExtraArgs: []string{"-DYAWL", "-I/opt/my includes"}}
	entry, err := p.ParseLine("zig clang foo.c -O2 -MT foo.o -c -o foo.o", "/proj")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"clang", "-DYAWL", "-I/opt/my includes", "-O2", "-c", "-o", "foo.o", "foo.c"}, entry.Arguments)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/proj/foo.c", joinPath("/proj", "foo.c"))
	assert.Equal(t, "/proj/foo.c", joinPath("/proj/", "foo.c"))
	assert.Equal(t, "/abs/foo.c", joinPath("/proj", "/abs/foo.c"))
	assert.Equal(t, "foo.c", joinPath("", "foo.c"))
	assert.Equal(t, "/proj/./sub/foo.c", joinPath("/proj", "./sub/foo.c"))
	assert.Equal(t, "/proj/build/../out/foo.o", joinPath("/proj/build", "../out/foo.o"))
	assert.Equal(t, "build/foo.c", joinPath("build", "foo.c"))
}

func TestParseLineKeepsDotComponents(t *testing.T) {
	entry, err := ParseLine("zig clang ./sub/foo.c -MT x -c -o ../out/foo.o", "/proj/build")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "/proj/build/./sub/foo.c", entry.File)
	assert.Equal(t, "/proj/build/../out/foo.o", entry.Output)
	assert.Equal(t, []string{"clang++", "-c", "-o", "../out/foo.o", "./sub/foo.c"}, entry.Arguments)
}
