package service

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"terrafarm-server/internal/game"
	"terrafarm-server/shared/models"
)

const defaultFarmName = "My Farm"

var (
	gamesStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "terrafarm_games_started_total",
			Help: "Total number of game sessions started.",
		},
	)
	turnsResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terrafarm_turns_resolved_total",
			Help: "Total number of resolved turns by outcome.",
		},
		[]string{"outcome"}, // continue | victory | defeat
	)
	randomEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terrafarm_random_events_total",
			Help: "Total number of random events fired, by event type.",
		},
		[]string{"type"},
	)
	purchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "terrafarm_resource_purchases_total",
			Help: "Total number of successful resource purchases.",
		},
		[]string{"resource"},
	)
)

// EarthDataProvider поставляет спутниковые данные локации.
type EarthDataProvider interface {
	Snapshot(lat, lon float64) models.EarthData
	AnnualClimate(lat float64) models.LocationClimate
	SatelliteImages(lat, lon float64, date string) models.SatelliteImages
}

// ScenarioGenerator производит сценарий хода по состоянию и снимку.
type ScenarioGenerator interface {
	Generate(ctx context.Context, state *models.GameState, snapshot models.EarthData) *models.GameScenario
}

// TurnResult - итог разрешения одного хода.
type TurnResult struct {
	State    *models.GameState
	Scenario *models.GameScenario // nil, если игра завершена
	Event    *models.RandomEvent
	Message  string
}

// GameService связывает движок игры с поставщиком спутниковых данных
// и генератором сценариев. Состояний не хранит: каждый вызов получает
// состояние от клиента и возвращает новое.
type GameService struct {
	engine    *game.Engine
	earth     EarthDataProvider
	scenarios ScenarioGenerator
	log       *zap.Logger
}

// NewGameService создает игровой сервис.
func NewGameService(engine *game.Engine, earth EarthDataProvider, scenarios ScenarioGenerator, log *zap.Logger) *GameService {
	return &GameService{
		engine:    engine,
		earth:     earth,
		scenarios: scenarios,
		log:       log,
	}
}

// StartNewGame создает сессию и генерирует сценарий первого хода.
func (s *GameService) StartNewGame(ctx context.Context, location models.Coordinates, farmName string) (*models.GameState, *models.GameScenario, error) {
	if err := validateLocation(location); err != nil {
		return nil, nil, err
	}
	if farmName == "" {
		farmName = defaultFarmName
	}

	state := s.engine.StartNewGame(location, farmName)
	gamesStartedTotal.Inc()

	s.log.Info("new game started",
		zap.String("game_id", state.ID),
		zap.String("farm_name", farmName),
		zap.Float64("lat", location.Lat),
		zap.Float64("lon", location.Lon),
		zap.Ints("scheduled_event_turns", state.ScheduledEventTurns))

	scenario := s.buildScenario(ctx, state)
	return state, scenario, nil
}

// GenerateScenario генерирует сценарий для произвольного состояния,
// например при повторном запросе вариантов текущего хода.
func (s *GameService) GenerateScenario(ctx context.Context, state *models.GameState) (*models.GameScenario, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: game state is required", models.ErrValidation)
	}
	if state.IsGameOver {
		return nil, models.ErrGameOver
	}
	return s.buildScenario(ctx, state), nil
}

// ProcessChoice разрешает ход. selected может быть nil: тогда опция
// ищется по ID в перегенерированном сценарии текущего хода (надежно
// только для детерминированных запасных сценариев).
func (s *GameService) ProcessChoice(ctx context.Context, state *models.GameState, optionID string, selected *models.GameOption) (*TurnResult, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: game state is required", models.ErrValidation)
	}

	snapshot := s.earth.Snapshot(state.FarmLocation.Lat, state.FarmLocation.Lon)

	if selected == nil && !state.IsGameOver {
		selected = s.lookupOption(ctx, state, snapshot, optionID)
	}

	climate := s.earth.AnnualClimate(state.FarmLocation.Lat)
	next, event, err := s.engine.ProcessChoice(state, optionID, selected, snapshot, &climate)
	if err != nil {
		return nil, err
	}

	if event != nil {
		randomEventsTotal.With(prometheus.Labels{"type": event.Type}).Inc()
		s.log.Info("random event fired",
			zap.String("game_id", next.ID),
			zap.String("event", event.Name),
			zap.Int("turn", event.Turn))
	}

	result := &TurnResult{State: next, Event: event}
	switch {
	case next.IsVictory:
		turnsResolvedTotal.With(prometheus.Labels{"outcome": "victory"}).Inc()
		result.Message = "Congratulations! You won!"
	case next.IsGameOver:
		turnsResolvedTotal.With(prometheus.Labels{"outcome": "defeat"}).Inc()
		result.Message = "Game Over"
	default:
		turnsResolvedTotal.With(prometheus.Labels{"outcome": "continue"}).Inc()
		result.Scenario = s.buildScenario(ctx, next)
	}

	s.log.Info("turn resolved",
		zap.String("game_id", next.ID),
		zap.Int("turn", next.Turn),
		zap.Int("production", next.Metrics.Production),
		zap.Int("sustainability", next.Metrics.Sustainability),
		zap.Bool("game_over", next.IsGameOver))

	return result, nil
}

// PurchaseResources пополняет запас одного ресурса за деньги.
func (s *GameService) PurchaseResources(state *models.GameState, resourceType string, quantity int) (*models.GameState, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: game state is required", models.ErrValidation)
	}

	kind, err := game.ParseResourceKind(resourceType)
	if err != nil {
		return nil, err
	}

	next, err := s.engine.PurchaseResources(state, kind, quantity)
	if err != nil {
		return nil, err
	}

	purchasesTotal.With(prometheus.Labels{"resource": resourceType}).Inc()
	s.log.Info("resources purchased",
		zap.String("game_id", next.ID),
		zap.String("resource", resourceType),
		zap.Int("quantity", quantity),
		zap.Int("money_left", next.Resources.Money))

	return next, nil
}

// GetStats возвращает производные агрегаты по состоянию.
func (s *GameService) GetStats(state *models.GameState) (models.GameStats, error) {
	if state == nil {
		return models.GameStats{}, fmt.Errorf("%w: game state is required", models.ErrValidation)
	}
	return game.Stats(state), nil
}

// buildScenario генерирует сценарий и прикладывает к нему ссылки
// на спутниковые снимки локации.
func (s *GameService) buildScenario(ctx context.Context, state *models.GameState) *models.GameScenario {
	snapshot := s.earth.Snapshot(state.FarmLocation.Lat, state.FarmLocation.Lon)
	scenario := s.scenarios.Generate(ctx, state, snapshot)

	images := s.earth.SatelliteImages(state.FarmLocation.Lat, state.FarmLocation.Lon, "")
	scenario.SatelliteImages = &images

	return scenario
}

// lookupOption восстанавливает опцию по ID из сценария текущего хода.
func (s *GameService) lookupOption(ctx context.Context, state *models.GameState, snapshot models.EarthData, optionID string) *models.GameOption {
	scenario := s.scenarios.Generate(ctx, state, snapshot)
	for i := range scenario.Options {
		if scenario.Options[i].ID == optionID {
			return &scenario.Options[i]
		}
	}
	return nil
}

func validateLocation(location models.Coordinates) error {
	if location.Lat < -90 || location.Lat > 90 {
		return fmt.Errorf("%w: latitude %v is out of range [-90, 90]", models.ErrValidation, location.Lat)
	}
	if location.Lon < -180 || location.Lon > 180 {
		return fmt.Errorf("%w: longitude %v is out of range [-180, 180]", models.ErrValidation, location.Lon)
	}
	return nil
}
