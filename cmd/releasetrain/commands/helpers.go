package commands

import (
	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
	"releasetrain/internal/version"
)

// rule returns the configured week and day of the release train.
// Both were validated when the app was wired.
func rule() (domain.WeekOfMonth, domain.DayOfWeek) {
	week, _ := appCtx.Config.WeekOfMonth()
	day, _ := appCtx.Config.DayOfWeek()
	return week, day
}

// parseFrom parses a --from value. Empty means today.
func parseFrom(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return types.ParseDate(s)
}

// checkVersion logs a warning for labels that are not semantic versions.
// Such labels still work; only prerelease and minor detection degrade.
func checkVersion(v string) {
	if _, err := version.Parse(v); err != nil {
		appCtx.Log.Warn("version is not a semantic version", "version", v, "err", err)
	}
}

// repository returns the configured repository, failing if it is unset.
func repository() (domain.RepositoryRef, error) {
	if err := appCtx.Config.RequireRepository(); err != nil {
		return domain.RepositoryRef{}, err
	}
	return appCtx.Config.Repository, nil
}
