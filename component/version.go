package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blang/semver/v4"
	goversion "github.com/hashicorp/go-version"
	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/types"
)

const InitialVersion = "0.0.0"

// NextVersion applies a release type to the previous version. A prerelease
// previous version is finalized rather than bumped when the bump does not
// go past it, so 2.0.0-beta.1 plus major is 2.0.0.
func NextVersion(previous string, releaseType types.ReleaseType) (string, error) {
	errCtx := errorx.Ctx().Set("version", previous).Set("release_type", releaseType.String())
	v, err := semver.Parse(strings.TrimPrefix(strings.TrimSpace(previous), "v"))
	if err != nil {
		return "", errorx.InvalidVersion(fmt.Errorf("failed to parse previous version %q: %w", previous, err), errCtx)
	}

	prerelease := len(v.Pre) > 0
	v.Build = nil
	switch releaseType {
	case types.ReleaseTypeMajor:
		if !prerelease || v.Minor != 0 || v.Patch != 0 {
			_ = v.IncrementMajor()
		}
	case types.ReleaseTypeMinor:
		if !prerelease || v.Patch != 0 {
			_ = v.IncrementMinor()
		}
	case types.ReleaseTypePatch:
		if !prerelease {
			_ = v.IncrementPatch()
		}
	default:
		return "", errorx.InvalidVersion(fmt.Errorf("failed to calculate the next version from %q using release type %q", previous, releaseType.String()), errCtx)
	}
	v.Pre = nil
	return v.String(), nil
}

// SortReleaseTags orders semantic version tags from newest to oldest.
// Tags that are not semantic versions are dropped.
func SortReleaseTags(tags []string) []string {
	type tagVersion struct {
		tag     string
		version *goversion.Version
	}
	parsed := make([]tagVersion, 0, len(tags))
	for _, tag := range tags {
		v, err := goversion.NewSemver(tag)
		if err != nil {
			continue
		}
		parsed = append(parsed, tagVersion{tag: tag, version: v})
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].version.GreaterThan(parsed[j].version)
	})

	sorted := make([]string, 0, len(parsed))
	for _, p := range parsed {
		sorted = append(sorted, p.tag)
	}
	return sorted
}

// LatestReleaseTag returns the highest semantic version tag, or "" when none.
func LatestReleaseTag(tags []string) string {
	sorted := SortReleaseTags(tags)
	if len(sorted) == 0 {
		return ""
	}
	return sorted[0]
}

// PreviousReleaseTag returns the highest tag strictly lower than tag.
func PreviousReleaseTag(tags []string, tag string) string {
	current, err := goversion.NewSemver(tag)
	if err != nil {
		return ""
	}
	for _, t := range SortReleaseTags(tags) {
		v, _ := goversion.NewSemver(t)
		if v.LessThan(current) {
			return t
		}
	}
	return ""
}

// VersionFromTag strips the "v" prefix of a release tag.
func VersionFromTag(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

// NormalizeTag turns "1.2.3" and "v1.2.3" into "v1.2.3".
func NormalizeTag(tag string) string {
	return types.ReleaseTag(strings.TrimSpace(tag))
}
