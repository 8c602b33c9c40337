package config

const (
	DateTimeFormat  = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
	ConsumerGroupID = "petilan_category_service"

	// inbound topics
	BreedUpsertedTopic   = "v1.breed.breed.created_or_updated"
	BreedDeletedTopic    = "v1.breed.breed.deleted"
	ListingUpsertedTopic = "v1.classified.listing.created_or_updated"
	ListingDeletedTopic  = "v1.classified.listing.deleted"

	// outbound topics
	CategoryChangedTopic = "v1.category.category.changed"

	// cache view keys
	RootListCacheKey         = "categories:roots"
	TreeCacheKey             = "categories:tree"
	PopularCacheKeyPrefix    = "categories:popular:"
	ChildrenCacheKeyPrefix   = "categories:children:"
	BreadcrumbCacheKeyPrefix = "categories:breadcrumb:"

	// DebugMode indicates service mode is debug.
	DebugMode = "debug"
	// TestMode indicates service mode is test.
	TestMode = "test"
	// ReleaseMode indicates service mode is release.
	ReleaseMode = "release"

	DefaultPopularLimit = 10
	MaxPopularLimit     = 50

	DefaultColorCode = "#6366f1"
	DogsRootName     = "Dogs"
)
