package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"terrafarm-server/shared/models"
)

const generationTemperature = 0.8

// systemPrompt задаёт роль модели: образовательный мастер игры,
// всегда отвечающий валидным JSON-объектом.
const systemPrompt = `You are a game master specialized in sustainable agriculture.
Create educational scenarios based on real NASA satellite data.
Use clear, accessible language.
Always explain the scientific context of the NASA data in an educational way.
Each option must have clear impacts on production and sustainability.
IMPORTANT: ALWAYS respond with a valid JSON object.`

// scenarioPayload - ожидаемая форма JSON-ответа модели.
type scenarioPayload struct {
	Narrative   string              `json:"narrative"`
	NASAContext string              `json:"nasaContext"`
	Options     []models.GameOption `json:"options"`
}

// Generator производит сценарий хода: нарратив, научный контекст
// и варианты решения. При nil AI клиенте или любой ошибке генерации
// используется детерминированная запасная таблица.
type Generator struct {
	ai  AIClient
	log *zap.Logger
}

// NewGenerator создает генератор сценариев. ai может быть nil.
func NewGenerator(ai AIClient, log *zap.Logger) *Generator {
	return &Generator{ai: ai, log: log}
}

// Generate возвращает сценарий для текущего хода. Никогда не падает:
// худший исход - запасной сценарий.
func (g *Generator) Generate(ctx context.Context, state *models.GameState, snapshot models.EarthData) *models.GameScenario {
	if g.ai == nil {
		return g.fallbackScenario(state, snapshot)
	}

	prompt := buildPrompt(state, snapshot)
	temperature := generationTemperature

	text, usage, err := g.ai.GenerateText(ctx, systemPrompt, prompt, GenerationParams{
		Temperature: &temperature,
	})
	if err != nil {
		g.log.Warn("scenario generation failed, using fallback",
			zap.String("game_id", state.ID),
			zap.Int("turn", state.Turn),
			zap.Error(err))
		return g.fallbackScenario(state, snapshot)
	}

	scenario, err := parseScenario(text, snapshot)
	if err != nil {
		g.log.Warn("failed to parse generated scenario, using fallback",
			zap.String("game_id", state.ID),
			zap.Int("turn", state.Turn),
			zap.Error(err))
		return g.fallbackScenario(state, snapshot)
	}

	g.log.Info("scenario generated",
		zap.String("game_id", state.ID),
		zap.Int("turn", state.Turn),
		zap.Int("options", len(scenario.Options)),
		zap.Int("total_tokens", usage.TotalTokens))

	return scenario
}

// buildPrompt собирает пользовательский промт из состояния игры
// и спутникового снимка. Последнее решение даёт модели контекст.
func buildPrompt(state *models.GameState, snapshot models.EarthData) string {
	var previousContext string
	if len(state.History) > 0 {
		last := state.History[len(state.History)-1]
		previousContext = fmt.Sprintf("\n\nPlayer's last decision: %s (turn %d)", last.Description, last.Turn)
	}

	return fmt.Sprintf(`Generate a game scenario for turn %d of %d.

FARM: %s
LOCATION: lat %.2f, lon %.2f

CURRENT METRICS:
- Production: %d/100
- Sustainability: %d/100

RESOURCES:
- Water: %d
- Fertilizer: %d
- Seeds: %d
- Money: $%d

NASA DATA:
- Soil moisture: %.1f%%
- Temperature: %d°C
- Precipitation: %dmm
- Vegetation index (NDVI): %.2f%s

TASK:
Create a realistic agricultural scenario that:
1. Uses the NASA data to contextualize the situation
2. Presents 2-3 decision options
3. Gives each option clear impacts on production/sustainability
4. Includes an educational explanation of the NASA data

JSON FORMAT (mandatory):
{
  "narrative": "Scenario description (2-3 paragraphs)",
  "nasaContext": "Educational explanation of the NASA data and its impact",
  "options": [
    {
      "id": "A",
      "description": "Option description",
      "impacts": {
        "production": -10 to +15,
        "sustainability": -10 to +15
      },
      "educational": "Why this decision has these impacts",
      "resourceCost": {
        "water": 0-50,
        "fertilizer": 0-50,
        "seeds": 0-30,
        "money": 0-500
      }
    }
  ]
}

IMPORTANT:
- Impacts should sum close to zero for balance
- Each option must teach something about sustainable agriculture
- Use the NASA data in an educational way, not decoratively`,
		state.Turn, state.MaxTurns,
		state.FarmName,
		state.FarmLocation.Lat, state.FarmLocation.Lon,
		state.Metrics.Production, state.Metrics.Sustainability,
		state.Resources.Water, state.Resources.Fertilizer, state.Resources.Seeds, state.Resources.Money,
		snapshot.SoilMoisture, snapshot.Temperature, snapshot.Precipitation, snapshot.VegetationIndex,
		previousContext)
}

// parseScenario разбирает JSON-ответ модели. Ограждения из markdown
// срезаются: некоторые модели оборачивают JSON в кодовый блок.
func parseScenario(text string, snapshot models.EarthData) (*models.GameScenario, error) {
	cleaned := stripJSONFence(text)

	var payload scenarioPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid scenario JSON: %w", err)
	}

	if payload.Narrative == "" {
		return nil, fmt.Errorf("scenario narrative is empty")
	}
	if len(payload.Options) < 2 {
		return nil, fmt.Errorf("scenario has %d options, need at least 2", len(payload.Options))
	}
	for i, opt := range payload.Options {
		if opt.ID == "" {
			return nil, fmt.Errorf("option %d has no id", i)
		}
		if opt.Description == "" {
			return nil, fmt.Errorf("option %q has no description", opt.ID)
		}
	}

	return &models.GameScenario{
		Narrative:   payload.Narrative,
		NASAContext: payload.NASAContext,
		EarthData:   snapshot,
		Options:     payload.Options,
	}, nil
}

func stripJSONFence(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
