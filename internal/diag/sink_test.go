package diag

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendRespectsCapacity(t *testing.T) {
	var s Sink
	for i := 0; i < Capacity+10; i++ {
		s.Errorf(Semantic, "x.lux", i, 1, "", 1, "diag %d", i)
	}
	require.Equal(t, Capacity, s.Len())
}

func TestHasErrorsAndClear(t *testing.T) {
	var s Sink
	require.False(t, s.HasErrors())
	s.Errorf(Lexical, "x.lux", 1, 1, "let x", 1, "bad token")
	require.True(t, s.HasErrors())
	s.Clear()
	require.False(t, s.HasErrors())
}

func TestReportFormat(t *testing.T) {
	var s Sink
	s.Errorf(Semantic, "main.lux", 3, 10, "    return x;", 1, "Undefined identifier 'x'")
	var buf bytes.Buffer
	hadErrors := s.Report(&buf)
	require.True(t, hadErrors)
	out := buf.String()
	require.Contains(t, out, "main.lux:3:10")
	require.Contains(t, out, "    return x;")
	require.Contains(t, out, fmt.Sprintf("Undefined identifier 'x'"))
}
