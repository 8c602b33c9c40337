package models

type Category struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	IconName    string  `json:"icon_name"`
	ColorCode   string  `json:"color_code"`
	PetType     string  `json:"pet_type"`
	UsageCount  int     `json:"usage_count"`
	Active      bool    `json:"active"`
	SortOrder   int     `json:"sort_order"`
	ParentId    *string `json:"parent_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CategoryNode is one node of the nested tree view.
type CategoryNode struct {
	Id         string          `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	IconName   string          `json:"icon_name"`
	ColorCode  string          `json:"color_code"`
	PetType    string          `json:"pet_type"`
	UsageCount int             `json:"usage_count"`
	Children   []*CategoryNode `json:"children"`
}

// BreadcrumbItem is one step of the root-to-node path.
type BreadcrumbItem struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	IconName    string  `json:"icon_name"`
	ColorCode   string  `json:"color_code"`
	PetType     string  `json:"pet_type"`
	SortOrder   int     `json:"sort_order"`
	ParentId    *string `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	IconName    string  `json:"icon_name"`
	ColorCode   string  `json:"color_code"`
	PetType     string  `json:"pet_type"`
	SortOrder   int     `json:"sort_order"`
	ParentId    *string `json:"parent_id"`
}

// PetTypes accepted for a category; mirrors the platform-wide tag set.
var PetTypes = map[string]bool{
	"dog":     true,
	"cat":     true,
	"bird":    true,
	"fish":    true,
	"rodent":  true,
	"reptile": true,
	"other":   true,
}
