package game

import (
	"fmt"

	"terrafarm-server/shared/models"
)

// Игровые константы. Пороговые значения и стартовые запасы фиксированы
// для сессии и не настраиваются извне.
const (
	MinMetricValue    = 0
	MaxMetricValue    = 100
	GameOverThreshold = 20
	VictoryThreshold  = 80

	DefaultMaxTurns       = 20
	InitialProduction     = 20
	InitialSustainability = 20

	// MaxResourceStock - максимальный запас для воды, удобрений и семян.
	// Деньги сверху не ограничены.
	MaxResourceStock = 100

	// IncomeRate - доход за ход: money += production * IncomeRate.
	IncomeRate = 5
)

// ResourceKind - типизированный вид ресурса. Используется вместо строковых
// ключей, чтобы исключить класс ошибок с опечатками в динамических картах.
type ResourceKind string

const (
	ResourceWater      ResourceKind = "water"
	ResourceFertilizer ResourceKind = "fertilizer"
	ResourceSeeds      ResourceKind = "seeds"
	ResourceMoney      ResourceKind = "money"
)

// unitPrices - фиксированный прейскурант закупки. Деньги не покупаются.
var unitPrices = map[ResourceKind]int{
	ResourceWater:      10,
	ResourceFertilizer: 15,
	ResourceSeeds:      20,
}

// ParseResourceKind валидирует строковый вид ресурса из внешнего запроса.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch ResourceKind(s) {
	case ResourceWater, ResourceFertilizer, ResourceSeeds, ResourceMoney:
		return ResourceKind(s), nil
	}
	return "", fmt.Errorf("%w: unknown resource kind %q", models.ErrValidation, s)
}

// UnitPrice возвращает цену за единицу для покупаемых видов ресурсов.
func UnitPrice(kind ResourceKind) (int, bool) {
	price, ok := unitPrices[kind]
	return price, ok
}

// InitialResources возвращает стартовые запасы новой игры.
func InitialResources() models.Resources {
	return models.Resources{
		Water:      100,
		Fertilizer: 100,
		Seeds:      100,
		Money:      1000,
	}
}
