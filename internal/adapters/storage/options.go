package storage

const defaultCacheControl = "3600"

// SupabaseOption configures a SupabaseStore.
type SupabaseOption func(*SupabaseStore)

// WithCacheControl sets the max-age (seconds) stored with uploads.
func WithCacheControl(seconds string) SupabaseOption {
	return func(s *SupabaseStore) {
		if seconds != "" {
			s.cacheControl = seconds
		}
	}
}

// WithUpsert overwrites existing objects with the same name.
func WithUpsert(upsert bool) SupabaseOption {
	return func(s *SupabaseStore) { s.upsert = upsert }
}
