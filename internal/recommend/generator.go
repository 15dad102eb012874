// Package recommend produces the "AI" restaurant recommendation: after an
// artificial delay one of the visible restaurants is picked at random and
// wrapped in templated prose.
package recommend

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gcbaptista/matjibmap/internal/errors"
	"github.com/gcbaptista/matjibmap/model"
)

// Result is a generated recommendation.
type Result struct {
	Restaurant model.Restaurant
	Text       string
}

// Generator turns criteria and a candidate set into a recommendation.
type Generator interface {
	Generate(ctx context.Context, criteria string, candidates []model.Restaurant) (Result, error)
}

const textTemplate = "\"%s\"을(를) 추천합니다.\n\n" +
	"%s를(을) 중요하게 생각하시는 고객님께 적합한 맛집입니다. " +
	"리뷰를 분석한 결과, 이 식당은 깔끔한 환경과 친절한 서비스를 제공하며 " +
	"음식의 맛이 일관되게 좋다는 평가를 받았습니다."

// FormatText renders the recommendation prose for a restaurant name.
func FormatText(name, criteria string) string {
	return fmt.Sprintf(textTemplate, name, criteria)
}

// TemplateGenerator picks a candidate uniformly at random and formats the
// fixed template. It ignores the review texts.
type TemplateGenerator struct {
	pick func(n int) int
}

// NewTemplateGenerator returns a generator backed by math/rand.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{pick: rand.Intn}
}

// NewTemplateGeneratorWithPicker uses pick(n) to choose an index in [0, n).
func NewTemplateGeneratorWithPicker(pick func(n int) int) *TemplateGenerator {
	return &TemplateGenerator{pick: pick}
}

// Generate implements Generator.
func (g *TemplateGenerator) Generate(ctx context.Context, criteria string, candidates []model.Restaurant) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		return Result{}, errors.ErrNoCandidates
	}

	i := g.pick(len(candidates))
	if i < 0 || i >= len(candidates) {
		return Result{}, fmt.Errorf("picker returned index %d for %d candidates", i, len(candidates))
	}

	chosen := candidates[i]
	return Result{
		Restaurant: chosen,
		Text:       FormatText(chosen.Name, criteria),
	}, nil
}
