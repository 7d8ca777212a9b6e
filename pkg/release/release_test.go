package release

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizesAllForms(t *testing.T) {
	cases := []struct {
		in         string
		normalized string
		targetTag  string
	}{
		{"143", "143.0", "FIREFOX_143_0_RELEASE"},
		{"143.0", "143.0", "FIREFOX_143_0_RELEASE"},
		{"143.0.1", "143.0.1", "FIREFOX_143_0_1_RELEASE"},
		{"115.12", "115.12", "FIREFOX_115_12_RELEASE"},
	}
	for _, tc := range cases {
		v, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.normalized, v.String(), tc.in)
		assert.Equal(t, tc.targetTag, v.TargetTag(), tc.in)
		assert.Equal(t, tc.in, v.Raw, tc.in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "143.x", "1.2.3.4", "-1"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

var fakeTags = []string{
	"FIREFOX_142_0_RELEASE",
	"FIREFOX_143_0_RELEASE",
	"FIREFOX_143_0_1_RELEASE",
	"FIREFOX_143_0b9_RELEASE",
	"FIREFOX_144_0_RELEASE",
}

func TestResolveTagsPointRelease(t *testing.T) {
	v, err := Parse("143.0.1")
	require.NoError(t, err)

	pair, err := ResolveTags(fakeTags, v)
	require.NoError(t, err)
	assert.Equal(t, "FIREFOX_143_0_RELEASE", pair.Previous)
	assert.Equal(t, "FIREFOX_143_0_1_RELEASE", pair.Current)

	// Deterministic over a fixed tag list.
	again, err := ResolveTags(fakeTags, v)
	require.NoError(t, err)
	assert.Equal(t, pair, again)
}

func TestResolveTagsMajorRelease(t *testing.T) {
	v, err := Parse("143.0")
	require.NoError(t, err)

	pair, err := ResolveTags(fakeTags, v)
	require.NoError(t, err)
	assert.Equal(t, "FIREFOX_142_0_RELEASE", pair.Previous)
	assert.Equal(t, "FIREFOX_143_0_RELEASE", pair.Current)
}

func TestResolveTagsMissingCurrent(t *testing.T) {
	v, err := Parse("199.0")
	require.NoError(t, err)

	_, err = ResolveTags(fakeTags, v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTagNotFound))
	assert.Contains(t, err.Error(), "could not find release tag")
}

func TestResolveTagsMissingPrevious(t *testing.T) {
	v, err := Parse("142.0")
	require.NoError(t, err)

	_, err = ResolveTags([]string{"FIREFOX_142_0_RELEASE"}, v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTagNotFound))
}
