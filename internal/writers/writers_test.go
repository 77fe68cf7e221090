package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirscan-core/scan"
	"mirscan/pkg/api"
)

func reports() []scan.Report {
	return []scan.Report{
		{QueryID: "q1", ReferenceID: "r1", QueryLen: 6, ReferenceLen: 12},
		{QueryID: "q1", ReferenceID: "r2", QueryLen: 6, ReferenceLen: 30,
			Digest: scan.Digest{OK: true, TotalScore: 120, TotalEnergy: 4.85, MaxScore: 120, MaxEnergy: -4.85, QueryLen: 6, ReferenceLen: 30, Positions: []int{2}}},
	}
}

func run(t *testing.T, format string, w io.Writer) error {
	t.Helper()
	in, done := Start(w, format, 1)
	for _, r := range reports() {
		in <- r
	}
	close(in)
	return <-done
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(t, "json", &buf))
	var got []api.ReportV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].Digest.Error)
	assert.Equal(t, []int{2}, got[1].Digest.Positions)
	assert.Equal(t, "r2", got[1].ReferenceID)
}

func TestJSONWriterEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartJSONWriter(&buf, 0)
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(t, "jsonl", &buf))
	sc := bufio.NewScanner(&buf)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.Len(t, lines, 2)
	assert.Equal(t, `{"query_id":"q1","reference_id":"r1","hits":[],"digest":{"error":true}}`, lines[0])
	assert.Contains(t, lines[1], `"positions":[2]`)
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(t, "text", &buf))
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "#digest"))
	assert.Contains(t, out, "#digest\tq1\tr1\terror\n")
}

func TestUnknownFormatError(t *testing.T) {
	var b bytes.Buffer
	err := run(t, "nope-format", &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRegistered(t *testing.T) {
	assert.Equal(t, []string{"json", "jsonl", "text"}, Registered())
}

type pipeWriter struct{}

func (pipeWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("write stdout: %w", syscall.EPIPE) }

func TestBrokenPipeIsQuiet(t *testing.T) {
	for _, f := range []string{"json", "jsonl", "text"} {
		assert.NoError(t, run(t, f, pipeWriter{}), f)
	}
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(io.EOF))
}
