package models

const (
	FieldKindText    = "text"
	FieldKindNumber  = "number"
	FieldKindSelect  = "select"
	FieldKindBoolean = "boolean"
	FieldKindRange   = "range"
)

// FeatureOptions carries the per-kind payload of a feature definition.
// Only the fields belonging to the feature's kind may be set: select
// carries choices, range carries min/max/step, the rest carry nothing.
type FeatureOptions struct {
	Choices []string `json:"choices,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    *float64 `json:"step,omitempty"`
}

func (o FeatureOptions) Empty() bool {
	return len(o.Choices) == 0 && o.Min == nil && o.Max == nil && o.Step == nil
}

type CategoryFeature struct {
	Id         string         `json:"id"`
	CategoryId string         `json:"category_id"`
	Name       string         `json:"name"`
	FieldKind  string         `json:"field_kind"`
	Options    FeatureOptions `json:"options"`
	Required   bool           `json:"required"`
	Active     bool           `json:"active"`
	SortOrder  int            `json:"sort_order"`
}

type CreateFeatureRequest struct {
	Name      string         `json:"name" binding:"required"`
	FieldKind string         `json:"field_kind" binding:"required"`
	Options   FeatureOptions `json:"options"`
	Required  bool           `json:"required"`
	SortOrder int            `json:"sort_order"`
}
