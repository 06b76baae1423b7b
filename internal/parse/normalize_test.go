package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinesEmptyInput(t *testing.T) {
	require.Empty(t, Lines(""))
	require.Empty(t, Lines("   \n\t\n  \n"))
}

func TestLinesTrimsAndDropsBlanks(t *testing.T) {
	raw := "  first line  \n\n\t second line\t\n   \nthird"
	require.Equal(t, []string{"first line", "second line", "third"}, Lines(raw))
}

func TestLinesHandlesCRLF(t *testing.T) {
	raw := "one\r\ntwo\r\nthree"
	require.Equal(t, []string{"one", "two", "three"}, Lines(raw))
}

func TestLinesPreservesOrder(t *testing.T) {
	lines := Lines("z\ny\nx")
	require.Equal(t, []string{"z", "y", "x"}, lines)
}
