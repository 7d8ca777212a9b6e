package gitlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logFixture = `aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa|Alice|2026-01-10 12:00:00 +0000|Bug 1111111 - Fix video crash on seek
12	3	dom/media/MediaDecoder.cpp
5	0	dom/media/MediaDecoder.h

bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb|Bob|2026-01-11 09:30:00 +0000|Update in-tree icon assets
-	-	browser/themes/icon.png

cccccccccccccccccccccccccccccccccccccccc|Carol|2026-01-12 16:45:00 +0000|Bug 2222222 - Rework session restore
100	40	browser/components/sessionstore/SessionStore.sys.mjs
`

func TestParseLog(t *testing.T) {
	commits := parseLog(logFixture)
	require.Len(t, commits, 3)

	first := commits[0]
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", first.Hash)
	assert.Equal(t, "Alice", first.Author)
	assert.Equal(t, "Bug 1111111 - Fix video crash on seek", first.Subject)
	assert.Equal(t, 17, first.Insertions)
	assert.Equal(t, 3, first.Deletions)
	assert.Equal(t, []string{"dom/media/MediaDecoder.cpp", "dom/media/MediaDecoder.h"}, first.Files)
	assert.Equal(t, 20, first.Churn())

	// Binary files count as zero churn but still show up as touched files.
	second := commits[1]
	assert.Equal(t, 0, second.Churn())
	assert.Equal(t, []string{"browser/themes/icon.png"}, second.Files)

	third := commits[2]
	assert.Equal(t, "Carol", third.Author)
	assert.Equal(t, 140, third.Churn())
}

func TestParseLogEmpty(t *testing.T) {
	assert.Empty(t, parseLog(""))
	assert.Empty(t, parseLog("\n\n"))
}

func TestParseLogSubjectWithPipes(t *testing.T) {
	out := "dddddddddddddddddddddddddddddddddddddddd|Dave|2026-01-13 08:00:00 +0000|Bug 3333333 - Support a|b syntax\n1\t1\tparser/grammar.y\n"
	commits := parseLog(out)
	require.Len(t, commits, 1)
	assert.Equal(t, "Bug 3333333 - Support a|b syntax", commits[0].Subject)
}
