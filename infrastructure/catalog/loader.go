// Package catalog loads the static ingredient catalog and interaction graph.
// The default catalog is embedded in the binary; an external YAML file with
// the same layout can replace it.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"skincare-backend/domain/core/aggregates"
	"skincare-backend/domain/core/entities"
	"skincare-backend/domain/core/valueobjects"
	pkgerrors "skincare-backend/pkg/errors"
	"skincare-backend/pkg/utils"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// EmbeddedSource names the built-in catalog in logs and errors
const EmbeddedSource = "embedded"

// Document is the on-disk layout of a catalog file
type Document struct {
	Ingredients  []IngredientRecord  `yaml:"ingredients" validate:"required,min=1,dive"`
	Interactions []InteractionRecord `yaml:"interactions" validate:"dive"`
}

// IngredientRecord is one raw catalog entry
type IngredientRecord struct {
	ID               string   `yaml:"id" validate:"required"`
	Name             string   `yaml:"name" validate:"required"`
	Aliases          []string `yaml:"aliases" validate:"dive,required"`
	Category         string   `yaml:"category" validate:"required,oneof=cleanser toner essence serum_water serum_active exfoliant retinoid serum_oil eye_cream moisturizer ceramide face_oil sunscreen sleeping_mask"`
	Description      string   `yaml:"description" validate:"required"`
	HowItWorks       string   `yaml:"how_it_works"`
	Concerns         []string `yaml:"concerns" validate:"dive,oneof=acne aging hyperpigmentation dryness oiliness sensitivity redness dullness texture pores"`
	CautionSkinTypes []string `yaml:"caution_skin_types" validate:"dive,oneof=normal dry oily combination sensitive"`
	UsageTips        []string `yaml:"usage_tips"`
	TimeOfDay        string   `yaml:"time_of_day" validate:"omitempty,oneof=AM_ONLY PM_ONLY EITHER"`
	ApplicationOrder int      `yaml:"application_order" validate:"omitempty,min=1,max=10"`
	Priority         int      `yaml:"priority" validate:"omitempty,min=1,max=5"`
}

// InteractionRecord is one raw interaction edge
type InteractionRecord struct {
	A              string `yaml:"a" validate:"required"`
	B              string `yaml:"b" validate:"required,nefield=A"`
	Kind           string `yaml:"kind" validate:"required,oneof=CONFLICT CAUTION SYNERGY NEUTRAL"`
	Explanation    string `yaml:"explanation" validate:"required"`
	Recommendation string `yaml:"recommendation"`
	WaitMinutes    int    `yaml:"wait_minutes" validate:"gte=0"`
}

// Loader parses catalog documents into knowledge graphs
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new catalog loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads the catalog at path, or the embedded catalog when path is empty
func (l *Loader) Load(path string) (*aggregates.KnowledgeGraph, error) {
	if path == "" {
		return l.Parse(bytes.NewReader(embeddedCatalog), EmbeddedSource)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer file.Close()

	return l.Parse(file, path)
}

// Parse decodes, validates and assembles a catalog document
func (l *Loader) Parse(r io.Reader, source string) (*aggregates.KnowledgeGraph, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, pkgerrors.NewCatalogError(source, []string{"catalog is empty"})
		}
		return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
	}

	graph, err := Build(&doc)
	if err != nil {
		if appErr := pkgerrors.GetAppError(err); appErr != nil {
			appErr.Message = fmt.Sprintf("catalog %s: %s", source, appErr.Message)
		}
		l.logger.Error("Catalog rejected", zap.String("source", source), zap.Error(err))
		return nil, err
	}

	l.logger.Info("Catalog loaded",
		zap.String("source", source),
		zap.Int("ingredients", graph.IngredientCount()),
		zap.Int("interactions", graph.InteractionCount()),
	)
	return graph, nil
}

// Build validates a decoded document and assembles the graph. All record
// problems are collected before failing.
func Build(doc *Document) (*aggregates.KnowledgeGraph, error) {
	if problems := utils.ValidationProblems(doc); len(problems) > 0 {
		return nil, pkgerrors.NewCatalogError("document", problems)
	}

	var problems []string
	ingredients := make([]*entities.Ingredient, 0, len(doc.Ingredients))
	for i, rec := range doc.Ingredients {
		ingredient, err := rec.toEntity()
		if err != nil {
			problems = append(problems, fmt.Sprintf("ingredients[%d]: %s", i, describe(err)))
			continue
		}
		ingredients = append(ingredients, ingredient)
	}

	interactions := make([]*entities.Interaction, 0, len(doc.Interactions))
	for i, rec := range doc.Interactions {
		interaction, err := rec.toEntity()
		if err != nil {
			problems = append(problems, fmt.Sprintf("interactions[%d]: %s", i, describe(err)))
			continue
		}
		interactions = append(interactions, interaction)
	}

	if len(problems) > 0 {
		return nil, pkgerrors.NewCatalogError("records", problems)
	}

	return aggregates.NewKnowledgeGraph(ingredients, interactions)
}

func (rec IngredientRecord) toEntity() (*entities.Ingredient, error) {
	id, err := valueobjects.NewIngredientID(rec.ID)
	if err != nil {
		return nil, err
	}

	category, err := valueobjects.ParseCategory(rec.Category)
	if err != nil {
		return nil, err
	}

	concerns := make([]valueobjects.Concern, 0, len(rec.Concerns))
	for _, raw := range rec.Concerns {
		concern, err := valueobjects.ParseConcern(raw)
		if err != nil {
			return nil, err
		}
		concerns = append(concerns, concern)
	}

	skinTypes := make([]valueobjects.SkinType, 0, len(rec.CautionSkinTypes))
	for _, raw := range rec.CautionSkinTypes {
		skinType, err := valueobjects.ParseSkinType(raw)
		if err != nil {
			return nil, err
		}
		skinTypes = append(skinTypes, skinType)
	}

	timeOfDay := valueobjects.TimeEither
	if rec.TimeOfDay != "" {
		if timeOfDay, err = valueobjects.ParseTimeOfDay(rec.TimeOfDay); err != nil {
			return nil, err
		}
	}

	return entities.NewIngredient(entities.IngredientParams{
		ID:               id,
		Name:             rec.Name,
		Aliases:          rec.Aliases,
		Category:         category,
		Description:      rec.Description,
		HowItWorks:       rec.HowItWorks,
		Concerns:         concerns,
		CautionSkinTypes: skinTypes,
		UsageTips:        rec.UsageTips,
		TimeOfDay:        timeOfDay,
		ApplicationOrder: rec.ApplicationOrder,
		Priority:         rec.Priority,
	})
}

func (rec InteractionRecord) toEntity() (*entities.Interaction, error) {
	a, err := valueobjects.NewIngredientID(rec.A)
	if err != nil {
		return nil, err
	}
	b, err := valueobjects.NewIngredientID(rec.B)
	if err != nil {
		return nil, err
	}
	kind, err := valueobjects.ParseInteractionKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	return entities.NewInteraction(a, b, kind, rec.Explanation, rec.Recommendation, rec.WaitMinutes)
}

// describe prefers the bare message of an AppError over its typed prefix
func describe(err error) string {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
