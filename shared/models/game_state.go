package models

import "time"

// Coordinates - географические координаты фермы.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GameMetrics - две ограниченные метрики игры, каждая в диапазоне [0, 100].
type GameMetrics struct {
	Production     int `json:"production"`
	Sustainability int `json:"sustainability"`
}

// Resources - запасы ресурсов игрока. Вода, удобрения и семена
// ограничены максимальным запасом, деньги сверху не ограничены.
type Resources struct {
	Water      int `json:"water"`
	Fertilizer int `json:"fertilizer"`
	Seeds      int `json:"seeds"`
	Money      int `json:"money"`
}

// MetricImpacts - дельта влияния решения или события на метрики.
type MetricImpacts struct {
	Production     int `json:"production"`
	Sustainability int `json:"sustainability"`
}

// ResourceCost - частичная стоимость опции. Нулевое поле означает
// отсутствие требования по этому виду ресурса.
type ResourceCost struct {
	Water      int `json:"water,omitempty"`
	Fertilizer int `json:"fertilizer,omitempty"`
	Seeds      int `json:"seeds,omitempty"`
	Money      int `json:"money,omitempty"`
}

// EarthData - снимок смоделированных спутниковых данных для локации.
// Ядро игры не интерпретирует эти значения, только прикладывает их к решению.
type EarthData struct {
	SoilMoisture    float64 `json:"soilMoisture"`    // проценты, 0-100
	Temperature     int     `json:"temperature"`     // °C
	Precipitation   int     `json:"precipitation"`   // мм
	VegetationIndex float64 `json:"vegetationIndex"` // NDVI, 0-1
	Source          string  `json:"source"`
}

// LocationClimate - усреднённый климатический контекст локации,
// используется для взвешивания пула случайных событий.
type LocationClimate struct {
	AvgTemperature   float64 `json:"avgTemperature"`   // °C, среднегодовая
	AvgPrecipitation float64 `json:"avgPrecipitation"` // мм, годовая
}

// Decision - одно принятое решение. После добавления в историю не изменяется.
type Decision struct {
	Turn        int           `json:"turn"`
	OptionID    string        `json:"optionId"`
	Description string        `json:"description"`
	Impacts     MetricImpacts `json:"impacts"`
	EarthData   EarthData     `json:"nasaData"`
	Timestamp   time.Time     `json:"timestamp"`
}

// Achievement - разблокированное достижение. Уникально по ID,
// никогда не отзывается и не выдаётся повторно.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// RandomEvent - сработавшее случайное событие. Всегда негативное.
type RandomEvent struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Impacts     MetricImpacts `json:"impacts"`
	Type        string        `json:"type"` // climate | plague | market | natural
	Turn        int           `json:"turn"`
	Timestamp   time.Time     `json:"timestamp"`
}

// GameOption - вариант решения, предложенный генератором сценариев.
type GameOption struct {
	ID           string        `json:"id"`
	Description  string        `json:"description"`
	Impacts      MetricImpacts `json:"impacts"`
	Educational  string        `json:"educational"`
	ResourceCost *ResourceCost `json:"resourceCost,omitempty"`
}

// SatelliteImages - ссылки на слои спутниковых снимков NASA GIBS.
type SatelliteImages struct {
	TrueColor   string `json:"trueColor"`
	NDVI        string `json:"ndvi"`
	Temperature string `json:"temperature"`
}

// GameScenario - нарратив и варианты решения для одного хода.
// Производится генератором сценариев, ядро потребляет только options.
type GameScenario struct {
	Narrative       string           `json:"narrative"`
	NASAContext     string           `json:"nasaContext"`
	EarthData       EarthData        `json:"nasaData"`
	Options         []GameOption     `json:"options"`
	SatelliteImages *SatelliteImages `json:"satelliteImages,omitempty"`
}

// GameState - единственный изменяемый агрегат игры. Передаётся по значению
// между вызовами: сервер не хранит состояние между запросами.
type GameState struct {
	ID                  string        `json:"id"`
	Turn                int           `json:"turn"`
	MaxTurns            int           `json:"maxTurns"`
	Metrics             GameMetrics   `json:"metrics"`
	FarmLocation        Coordinates   `json:"farmLocation"`
	FarmName            string        `json:"farmName"`
	History             []Decision    `json:"history"`
	Resources           Resources     `json:"resources"`
	Achievements        []Achievement `json:"achievements"`
	RandomEvents        []RandomEvent `json:"randomEvents"`
	ScheduledEventTurns []int         `json:"scheduledEventTurns"`
	IsGameOver          bool          `json:"isGameOver"`
	IsVictory           bool          `json:"isVictory"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// Clone возвращает глубокую копию состояния. Разрешение хода всегда
// работает с копией: входное состояние никогда не мутируется.
func (s *GameState) Clone() *GameState {
	clone := *s
	clone.History = append([]Decision(nil), s.History...)
	clone.Achievements = append([]Achievement(nil), s.Achievements...)
	clone.RandomEvents = append([]RandomEvent(nil), s.RandomEvents...)
	clone.ScheduledEventTurns = append([]int(nil), s.ScheduledEventTurns...)
	return &clone
}

// HasAchievement проверяет, разблокировано ли достижение с данным ID.
func (s *GameState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// EventFiredOnTurn проверяет, было ли уже событие на данном ходу.
// Гарантия: не более одного события на запланированный ход.
func (s *GameState) EventFiredOnTurn(turn int) bool {
	for _, e := range s.RandomEvents {
		if e.Turn == turn {
			return true
		}
	}
	return false
}

// GameStats - производные агрегаты по завершённым ходам. Только чтение.
type GameStats struct {
	AvgProduction           float64 `json:"avgProduction"`
	AvgSustainability       float64 `json:"avgSustainability"`
	TotalProductionGain     int     `json:"totalProductionGain"`
	TotalSustainabilityGain int     `json:"totalSustainabilityGain"`
	DecisionsCount          int     `json:"decisionsCount"`
	AchievementsCount       int     `json:"achievementsCount"`
	FinalScore              float64 `json:"finalScore"`
}
