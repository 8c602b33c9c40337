package models

const ListingStatusActive = "active"

// Listing is the minimal local mirror of a classified record; only what
// usage counting needs.
type Listing struct {
	Id         string  `json:"id"`
	CategoryId *string `json:"category_id"`
	Status     string  `json:"status"`
}

// ListingChangedModel is the payload of listing save events. OldCategoryId
// is the reference before the save so both sides can be recounted.
type ListingChangedModel struct {
	Id            string  `json:"id"`
	CategoryId    *string `json:"category_id"`
	OldCategoryId *string `json:"old_category_id"`
	Status        string  `json:"status"`
}

// ListingDeletedModel is the payload of listing delete events.
type ListingDeletedModel struct {
	Id string `json:"id"`
}
