package github

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"opencsg.com/csghub-release/common/errorx"
)

var RequiredTokenScopes = []string{"repo", "admin:repo_hook", "admin:org_hook"}

var NewTokenURL = "https://github.com/settings/tokens/new?scopes=" + strings.Join(RequiredTokenScopes, ",")

// ValidateAccessToken checks that a classic token carries every scope needed
// to publish a release. Fine-grained tokens report no scopes and are let through.
func ValidateAccessToken(ctx context.Context, c Client, logger *slog.Logger) error {
	scopes, err := c.TokenScopes(ctx)
	if err != nil {
		return err
	}
	if len(scopes) == 0 {
		logger.WarnContext(ctx, "GitHub token reports no OAuth scopes, skipping permission check")
		return nil
	}

	var missing []string
	for _, scope := range RequiredTokenScopes {
		if !slices.Contains(scopes, scope) {
			missing = append(missing, scope)
		}
	}
	if len(missing) > 0 {
		return errorx.InvalidToken(
			fmt.Errorf("missing scopes \"%s\", generate a new personal access token at %s", strings.Join(missing, `", "`), NewTokenURL),
			errorx.Ctx().Set("missing_scopes", missing),
		)
	}
	return nil
}
