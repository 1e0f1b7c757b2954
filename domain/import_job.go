package domain

// ImportJob is an ephemeral unit of work: one owner, one source, an
// optional lookback window in days. A nil DaysAgo requests the
// unfiltered maximum batch from the source.
type ImportJob struct {
	OwnerID     string      `json:"owner_id"`
	Source      SourceType  `json:"source"`
	ProfileType ProfileType `json:"profile_type"`
	DaysAgo     *int        `json:"days_ago,omitempty"`
}

// UniquenessKey is the dedup key for in-flight jobs: at most one job per
// owner+source may execute at a time.
func (j ImportJob) UniquenessKey() string {
	return string(j.Source) + ":" + j.OwnerID
}
