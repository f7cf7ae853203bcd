package constants

import "time"

// Redis cache keys and TTL values for the TripVeda application.
// Pattern: tripveda:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour // very stable data (published pages)
	TTL_STATIC_MEDIUM = 12 * time.Hour // global pricing table
	TTL_STATIC_SHORT  = 6 * time.Hour  // blog posts
)

const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // tour details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // tour listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // featured tours
)

const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics summaries
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // coupon lookups
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "tripveda"
)

// ================== TOURS MODULE ==================

const (
	CACHE_KEY_TOURS_LIST     = CACHE_PREFIX + ":tours:list"           // + :page:X:limit:Y
	CACHE_KEY_TOURS_FEATURED = CACHE_PREFIX + ":tours:featured"       //
	CACHE_KEY_TOUR_DETAIL    = CACHE_PREFIX + ":tours:detail:slug:"   // + slug
	CACHE_KEY_GLOBAL_PRICE   = CACHE_PREFIX + ":tours:global_pricing" //

	PATTERN_INVALIDATE_TOURS_ALL = CACHE_PREFIX + ":tours:*"
)

// ================== PAGES MODULE ==================

const (
	CACHE_KEY_PAGE_DETAIL = CACHE_PREFIX + ":pages:detail:slug:" // + slug
	CACHE_KEY_POSTS_LIST  = CACHE_PREFIX + ":pages:posts:list"   // + :page:X

	PATTERN_INVALIDATE_PAGES_ALL = CACHE_PREFIX + ":pages:*"
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_SUMMARY = CACHE_PREFIX + ":analytics:summary"

	PATTERN_INVALIDATE_ANALYTICS_ALL = CACHE_PREFIX + ":analytics:*"
)
