package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"terrafarm-server/shared/models"
)

// Engine - разрешатель ходов. Не хранит игровых состояний: каждое
// обращение - чистая трансформация входного снимка в выходной.
// Источник случайности инжектируется для детерминированных тестов;
// *rand.Rand не потокобезопасен, доступ к нему сериализуется мьютексом.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewEngine создает движок. При rng == nil используется источник,
// засеянный текущим временем.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		rng: rng,
		now: time.Now,
	}
}

// StartNewGame создает состояние новой игровой сессии: первый ход,
// стартовые метрики и ресурсы, пустая история и заранее разыгранное
// расписание случайных событий.
func (e *Engine) StartNewGame(location models.Coordinates, farmName string) *models.GameState {
	now := e.now().UTC()
	return &models.GameState{
		ID:       uuid.NewString(),
		Turn:     1,
		MaxTurns: DefaultMaxTurns,
		Metrics: models.GameMetrics{
			Production:     InitialProduction,
			Sustainability: InitialSustainability,
		},
		FarmLocation:        location,
		FarmName:            farmName,
		History:             []models.Decision{},
		Resources:           InitialResources(),
		Achievements:        []models.Achievement{},
		RandomEvents:        []models.RandomEvent{},
		ScheduledEventTurns: e.scheduleEventTurns(DefaultMaxTurns),
		IsGameOver:          false,
		IsVictory:           false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// ProcessChoice разрешает один ход. Порядок фиксирован: валидация →
// списание стоимости → влияние на метрики → доход → запись в историю →
// достижения → инкремент хода → терминальная проверка → случайное событие
// (если игра продолжается). Все побочные эффекты ограничены возвращаемой
// копией; входное состояние не изменяется ни при успехе, ни при отказе.
func (e *Engine) ProcessChoice(
	state *models.GameState,
	optionID string,
	option *models.GameOption,
	snapshot models.EarthData,
	climate *models.LocationClimate,
) (*models.GameState, *models.RandomEvent, error) {
	if state == nil {
		return nil, nil, fmt.Errorf("%w: game state is required", models.ErrValidation)
	}
	if state.IsGameOver {
		return nil, nil, models.ErrGameOver
	}
	if optionID == "" {
		return nil, nil, fmt.Errorf("%w: option id is required", models.ErrValidation)
	}
	if option == nil || option.ID != optionID {
		return nil, nil, fmt.Errorf("%w: %q", models.ErrInvalidOption, optionID)
	}

	if ok, shortfalls := CanAfford(state.Resources, option.ResourceCost); !ok {
		return nil, nil, &models.InsufficientResourcesError{Shortfalls: shortfalls}
	}

	next := state.Clone()
	now := e.now().UTC()

	next.Resources = ApplyCost(next.Resources, option.ResourceCost)
	next.Metrics = ApplyImpacts(next.Metrics, option.Impacts)
	next.Resources, _ = CreditIncome(next.Resources, next.Metrics.Production)

	completedTurn := next.Turn
	next.History = append(next.History, models.Decision{
		Turn:        completedTurn,
		OptionID:    optionID,
		Description: option.Description,
		Impacts:     option.Impacts,
		EarthData:   snapshot,
		Timestamp:   now,
	})

	next.Achievements = append(next.Achievements, EvaluateAchievements(next, now)...)

	next.Turn++
	next.IsGameOver, next.IsVictory = EvaluateTerminal(next.Metrics, next.Turn, next.MaxTurns)

	var fired *models.RandomEvent
	if !next.IsGameOver {
		fired = e.fireScheduledEvent(next, completedTurn, climate, now)
	}

	next.UpdatedAt = now
	return next, fired, nil
}

// PurchaseResources возвращает копию состояния с пополненным запасом.
// Завершенная игра покупок не принимает.
func (e *Engine) PurchaseResources(state *models.GameState, kind ResourceKind, quantity int) (*models.GameState, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: game state is required", models.ErrValidation)
	}
	if state.IsGameOver {
		return nil, models.ErrGameOver
	}

	updated, err := Purchase(state.Resources, kind, quantity)
	if err != nil {
		return nil, err
	}

	next := state.Clone()
	next.Resources = updated
	next.UpdatedAt = e.now().UTC()
	return next, nil
}

// fireScheduledEvent проверяет расписание против только что завершенного
// хода (номер до инкремента) и срабатывает не более одного раза на ход.
// Шок может уронить метрику ниже порога поражения, поэтому терминальное
// условие перепроверяется после применения.
func (e *Engine) fireScheduledEvent(state *models.GameState, completedTurn int, climate *models.LocationClimate, now time.Time) *models.RandomEvent {
	if !containsTurn(state.ScheduledEventTurns, completedTurn) {
		return nil
	}
	if state.EventFiredOnTurn(completedTurn) {
		return nil
	}

	event := e.generateEvent(completedTurn, climate, now)
	state.Metrics = ApplyImpacts(state.Metrics, event.Impacts)
	state.RandomEvents = append(state.RandomEvents, event)
	state.IsGameOver, state.IsVictory = EvaluateTerminal(state.Metrics, state.Turn, state.MaxTurns)
	return &event
}

// Один движок обслуживает все конкурентные запросы, поэтому обращения
// к общему генератору проходят только через эти обертки.
func (e *Engine) scheduleEventTurns(maxTurns int) []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ScheduleEventTurns(e.rng, maxTurns)
}

func (e *Engine) generateEvent(turn int, climate *models.LocationClimate, now time.Time) models.RandomEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GenerateEvent(e.rng, turn, climate, now)
}

func containsTurn(turns []int, turn int) bool {
	for _, t := range turns {
		if t == turn {
			return true
		}
	}
	return false
}
