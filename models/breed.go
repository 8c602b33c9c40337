package models

// Breed is the local mirror of the external dog breed catalog. The breed
// service owns the data; this service only consumes its events and never
// writes back.
type Breed struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Popular     bool   `json:"popular"`
	Native      bool   `json:"native"`
	Active      bool   `json:"active"`
}

// BreedDeletedModel is the payload of the breed deleted event.
type BreedDeletedModel struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// ReconcileResult reports what a bulk breed reconciliation changed.
type ReconcileResult struct {
	Added       int `json:"added"`
	Reactivated int `json:"reactivated"`
	Errors      int `json:"errors"`
	Total       int `json:"total"`
}
