package constants

const (
	// ContextKeyUser is the gin context key for the resolved current user.
	ContextKeyUser = "current_user"

	MinPasswordLength = 8

	RecentUserTicketsLimit = 6
	RecentOrgTicketsLimit  = 8
	RecentSignupsLimit     = 5
	RecentTicketsLimit     = 10

	ResolvedPeriodDays = 7
)
