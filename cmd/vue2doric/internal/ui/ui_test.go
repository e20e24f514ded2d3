package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Success("wrote %d files", 3)
	p.Warn("unmapped <%s>", "marquee")
	p.Error("failed")

	out := buf.String()
	assert.Contains(t, out, "wrote 3 files")
	assert.Contains(t, out, "unmapped <marquee>")
	assert.Contains(t, out, "failed")
}

func TestPrinterDiff(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Diff(" a\n-b\n+c\n")
	assert.Contains(t, buf.String(), "-b")
	assert.Contains(t, buf.String(), "+c")
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Table([]string{"TAG", "SYMBOL"}, [][]string{{"div", "VLayout"}, {"img", "Image"}})
	for _, cell := range []string{"TAG", "SYMBOL", "div", "VLayout", "img", "Image"} {
		assert.Contains(t, buf.String(), cell)
	}
}
