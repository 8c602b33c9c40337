package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/petilan/petilan_category_service/models"
)

func validateFeatureOptions(fieldKind string, options models.FeatureOptions) error {
	switch fieldKind {
	case models.FieldKindSelect:
		if len(options.Choices) == 0 {
			return models.NewValidationError("options", "select features need at least one choice")
		}
		if options.Min != nil || options.Max != nil || options.Step != nil {
			return models.NewValidationError("options", "select features only carry choices")
		}
	case models.FieldKindRange:
		if options.Min == nil || options.Max == nil {
			return models.NewValidationError("options", "range features need min and max")
		}
		if *options.Min >= *options.Max {
			return models.NewValidationError("options", "min must be below max")
		}
		if len(options.Choices) > 0 {
			return models.NewValidationError("options", "range features do not carry choices")
		}
	case models.FieldKindText, models.FieldKindNumber, models.FieldKindBoolean:
		if !options.Empty() {
			return models.NewValidationError("options", "this field kind carries no options")
		}
	default:
		return models.NewValidationError("field_kind", "unknown field kind")
	}
	return nil
}

func (s *categoryService) AddFeature(ctx context.Context, categoryID string, req *models.CreateFeatureRequest) (*models.CategoryFeature, error) {

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, models.NewValidationError("name", "must be at least 2 characters")
	}

	if err := validateFeatureOptions(req.FieldKind, req.Options); err != nil {
		return nil, err
	}

	if _, err := s.strg.Category().GetByID(categoryID); err != nil {
		return nil, err
	}

	feature := &models.CategoryFeature{
		Id:         uuid.New().String(),
		CategoryId: categoryID,
		Name:       name,
		FieldKind:  req.FieldKind,
		Options:    req.Options,
		Required:   req.Required,
		Active:     true,
		SortOrder:  req.SortOrder,
	}

	if err := s.strg.Feature().Create(feature); err != nil {
		return nil, err
	}

	return feature, nil
}

func (s *categoryService) ListFeatures(ctx context.Context, categoryID string) ([]*models.CategoryFeature, error) {
	if _, err := s.strg.Category().GetByID(categoryID); err != nil {
		return nil, err
	}
	return s.strg.Feature().GetByCategory(categoryID)
}

func (s *categoryService) DeactivateFeature(ctx context.Context, featureID string) error {
	return s.strg.Feature().SetActive(featureID, false)
}
