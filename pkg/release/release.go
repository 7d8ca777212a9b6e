package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/padenot/fx-release-analyzer/pkg/model"
)

// ErrTagNotFound means no git tag matches the requested release. The
// repository is missing the release point, so there is nothing to analyze.
var ErrTagNotFound = errors.New("release tag not found")

// Version is a parsed Firefox version string. Minor defaults to 0 when only
// a major is given ("143" means 143.0).
type Version struct {
	Major int
	Minor int
	Patch int

	// HasPatch distinguishes point releases ("143.0.1") from dot-zero
	// releases ("143.0"), which map to different tag shapes.
	HasPatch bool

	// Raw preserves the user's original spelling for milestone queries.
	Raw string
}

// Parse accepts "143", "143.0" or "143.0.1".
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		nums[i] = n
	}

	v := Version{Major: nums[0], Raw: strings.TrimSpace(s)}
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
		v.HasPatch = true
	}
	return v, nil
}

// String returns the normalized form: "143" and "143.0" both print as
// "143.0", point releases as "143.0.1".
func (v Version) String() string {
	if v.HasPatch {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// TargetTag is the release tag name this version maps to, following the
// FIREFOX_<major>_<minor>[_<patch>]_RELEASE convention.
func (v Version) TargetTag() string {
	if v.HasPatch {
		return fmt.Sprintf("FIREFOX_%d_%d_%d_RELEASE", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("FIREFOX_%d_%d_RELEASE", v.Major, v.Minor)
}

// previousTagCandidates lists the tag names the preceding release may carry,
// most specific first. A point release's predecessor is its base release
// (143.0.1 -> 143.0); a dot-zero release's predecessor is the previous
// major (143.0 -> 142.0); otherwise the previous minor (143.2 -> 143.1).
func (v Version) previousTagCandidates() []string {
	if v.HasPatch {
		if v.Patch > 1 {
			return []string{
				fmt.Sprintf("FIREFOX_%d_%d_%d_RELEASE", v.Major, v.Minor, v.Patch-1),
				fmt.Sprintf("FIREFOX_%d_%d_RELEASE", v.Major, v.Minor),
			}
		}
		return []string{fmt.Sprintf("FIREFOX_%d_%d_RELEASE", v.Major, v.Minor)}
	}
	if v.Minor == 0 {
		return []string{fmt.Sprintf("FIREFOX_%d_0_RELEASE", v.Major-1)}
	}
	return []string{fmt.Sprintf("FIREFOX_%d_%d_RELEASE", v.Major, v.Minor-1)}
}

// ResolveTags picks the previous/current tag pair for a version out of the
// repository's tag list. Deterministic over a fixed tag list: the current
// tag is the first one containing the target name, the previous tag must
// match a candidate exactly.
func ResolveTags(tags []string, v Version) (model.TagPair, error) {
	target := v.TargetTag()

	var current string
	for _, tag := range tags {
		if strings.Contains(tag, target) {
			current = tag
			break
		}
	}
	if current == "" {
		return model.TagPair{}, fmt.Errorf("could not find release tag for Firefox %s: %w", v, ErrTagNotFound)
	}

	var previous string
	for _, candidate := range v.previousTagCandidates() {
		for _, tag := range tags {
			if tag == candidate {
				previous = tag
				break
			}
		}
		if previous != "" {
			break
		}
	}
	if previous == "" {
		return model.TagPair{}, fmt.Errorf("could not find previous release tag before %s: %w", current, ErrTagNotFound)
	}

	return model.TagPair{Previous: previous, Current: current}, nil
}
