package request

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"sportseek/internal/domain"
)

// Defaults applied to options the caller leaves unset
const (
	DefaultCount       = 10
	DefaultSortMethod  = domain.SortRelevance
	DefaultWeight      = 1.0
	DefaultUsePageRank = true
)

// Options carries the caller's search preferences; nil means "use the default"
type Options struct {
	Count           *int
	SortMethod      *domain.SortMethod
	WeightRelevance *float64
	WeightScore     *float64
	WeightTime      *float64
	UsePageRank     *bool
}

// Settings is the fully resolved, non-optional form of Options that UIs and
// config files keep around.
type Settings struct {
	Count           int
	SortMethod      domain.SortMethod
	WeightRelevance float64
	WeightScore     float64
	WeightTime      float64
	UsePageRank     bool
}

// DefaultSettings returns the documented defaults
func DefaultSettings() Settings {
	return Settings{
		Count:           DefaultCount,
		SortMethod:      DefaultSortMethod,
		WeightRelevance: DefaultWeight,
		WeightScore:     DefaultWeight,
		WeightTime:      DefaultWeight,
		UsePageRank:     DefaultUsePageRank,
	}
}

// Options returns s with every field explicitly set
func (s Settings) Options() Options {
	return Options{
		Count:           Ptr(s.Count),
		SortMethod:      Ptr(s.SortMethod),
		WeightRelevance: Ptr(s.WeightRelevance),
		WeightScore:     Ptr(s.WeightScore),
		WeightTime:      Ptr(s.WeightTime),
		UsePageRank:     Ptr(s.UsePageRank),
	}
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// resolved is what the validator checks. The name tags become ValidationError.Field.
type resolved struct {
	Count           int     `name:"count" validate:"gte=1"`
	WeightRelevance float64 `name:"weight_relevance" validate:"finite,gte=0"`
	WeightScore     float64 `name:"weight_score" validate:"finite,gte=0"`
	WeightTime      float64 `name:"weight_time" validate:"finite,gte=0"`
}

// Builder validates raw input and assembles SearchRequests. It has no side
// effects and is safe for concurrent use.
type Builder struct {
	v *validator.Validate
}

// NewBuilder creates a Builder with its validation rules registered
func NewBuilder() *Builder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("name"); name != "" {
			return name
		}
		return f.Name
	})
	// Registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return &Builder{v: v}
}

// Build trims rawQuery, applies defaults to unset options and validates the
// result. Only the lower bounds of count and weights are enforced.
func (b *Builder) Build(rawQuery string, opts Options) (domain.SearchRequest, error) {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return domain.SearchRequest{}, &ValidationError{Kind: EmptyQuery}
	}

	s := opts.resolve()
	r := resolved{
		Count:           s.Count,
		WeightRelevance: s.WeightRelevance,
		WeightScore:     s.WeightScore,
		WeightTime:      s.WeightTime,
	}
	if err := b.v.Struct(r); err != nil {
		return domain.SearchRequest{}, toValidationError(err)
	}

	return domain.SearchRequest{
		Query:           query,
		Count:           Ptr(s.Count),
		SortMethod:      Ptr(s.SortMethod),
		WeightRelevance: Ptr(s.WeightRelevance),
		WeightScore:     Ptr(s.WeightScore),
		WeightTime:      Ptr(s.WeightTime),
		UsePageRank:     Ptr(s.UsePageRank),
	}, nil
}

func (o Options) resolve() Settings {
	s := DefaultSettings()
	if o.Count != nil {
		s.Count = *o.Count
	}
	if o.SortMethod != nil && *o.SortMethod != "" {
		s.SortMethod = *o.SortMethod
	}
	if o.WeightRelevance != nil {
		s.WeightRelevance = *o.WeightRelevance
	}
	if o.WeightScore != nil {
		s.WeightScore = *o.WeightScore
	}
	if o.WeightTime != nil {
		s.WeightTime = *o.WeightTime
	}
	if o.UsePageRank != nil {
		s.UsePageRank = *o.UsePageRank
	}
	return s
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate search request: %w", err)
	}
	fe := verrs[0]
	if fe.Field() == "count" {
		return &ValidationError{Kind: InvalidCount, Field: fe.Field()}
	}
	return &ValidationError{Kind: InvalidWeight, Field: fe.Field()}
}
