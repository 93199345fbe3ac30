package domain

// Redis keys shared between the token refreshers, the cycle resolver and
// the Knowledge Hub sync. The names are fixed: other tooling reads them.
const (
	KeyDropboxAccessToken = "DROPBOX_ACCESS_TOKEN"

	KeyGmailAccessToken  = "gmail_access_token"
	KeyGmailRefreshToken = "gmail_refresh_token"

	KeyCoolingStart     = "two_week_cooling_period_start_date"
	KeyCoolingEnd       = "two_week_cooling_period_end_date"
	KeyNextCoolingStart = "next_two_week_cooling_period_start_date"
	KeyNextCoolingEnd   = "next_two_week_cooling_period_end_date"

	KeyCycleStart     = "6_week_cycle_start_date"
	KeyCycleEnd       = "6_week_cycle_end_date"
	KeyNextCycleStart = "next_6_week_cycle_start_date"
	KeyNextCycleEnd   = "next_6_week_cycle_end_date"

	KeyHubLastRunAt         = "notion_knowledge_hub_last_run_at"
	KeyYouTubeLastCheckedAt = "youtube_gmail_last_checked_at"

	// KeyCycleResolveLock guards the read-resolve-write of the cycle dates.
	KeyCycleResolveLock = "cycle_resolve_lock"
)
