package game

import (
	"fmt"

	"terrafarm-server/shared/models"
)

// CanAfford проверяет, покрывают ли ресурсы частичную стоимость опции.
// Возвращает список недостач по видам ресурсов; пустой список означает,
// что стоимость посильна. Нулевая или отсутствующая стоимость требований
// не накладывает.
func CanAfford(res models.Resources, cost *models.ResourceCost) (bool, []models.ResourceShortfall) {
	if cost == nil {
		return true, nil
	}

	var shortfalls []models.ResourceShortfall
	if cost.Water > res.Water {
		shortfalls = append(shortfalls, models.ResourceShortfall{Resource: string(ResourceWater), Missing: cost.Water - res.Water})
	}
	if cost.Fertilizer > res.Fertilizer {
		shortfalls = append(shortfalls, models.ResourceShortfall{Resource: string(ResourceFertilizer), Missing: cost.Fertilizer - res.Fertilizer})
	}
	if cost.Seeds > res.Seeds {
		shortfalls = append(shortfalls, models.ResourceShortfall{Resource: string(ResourceSeeds), Missing: cost.Seeds - res.Seeds})
	}
	if cost.Money > res.Money {
		shortfalls = append(shortfalls, models.ResourceShortfall{Resource: string(ResourceMoney), Missing: cost.Money - res.Money})
	}

	return len(shortfalls) == 0, shortfalls
}

// ApplyCost списывает стоимость с ресурсов. Каждый вид ресурса ограничен
// снизу нулем: даже если проверку CanAfford обошли, списание не уводит
// запас в минус.
func ApplyCost(res models.Resources, cost *models.ResourceCost) models.Resources {
	if cost == nil {
		return res
	}
	res.Water = max(0, res.Water-cost.Water)
	res.Fertilizer = max(0, res.Fertilizer-cost.Fertilizer)
	res.Seeds = max(0, res.Seeds-cost.Seeds)
	res.Money = max(0, res.Money-cost.Money)
	return res
}

// CreditIncome начисляет доход за ход, производный от текущей продукции.
// Возвращает обновленные ресурсы и размер начисления.
func CreditIncome(res models.Resources, production int) (models.Resources, int) {
	income := production * IncomeRate
	res.Money += income
	return res, income
}

// Purchase покупает quantity единиц ресурса за деньги по фиксированной цене.
// Стоимость считается за весь запрошенный объем; при нехватке денег покупка
// отклоняется целиком. Запас сверх максимума обрезается, покупка при этом
// проходит (clamp-and-succeed, без частичного заполнения).
func Purchase(res models.Resources, kind ResourceKind, quantity int) (models.Resources, error) {
	if quantity <= 0 {
		return res, fmt.Errorf("%w: quantity must be positive", models.ErrValidation)
	}

	price, ok := UnitPrice(kind)
	if !ok {
		return res, fmt.Errorf("%w: resource %q cannot be purchased", models.ErrValidation, kind)
	}

	cost := quantity * price
	if cost > res.Money {
		return res, &models.InsufficientResourcesError{
			Shortfalls: []models.ResourceShortfall{
				{Resource: string(ResourceMoney), Missing: cost - res.Money},
			},
		}
	}

	res.Money -= cost
	switch kind {
	case ResourceWater:
		res.Water = min(MaxResourceStock, res.Water+quantity)
	case ResourceFertilizer:
		res.Fertilizer = min(MaxResourceStock, res.Fertilizer+quantity)
	case ResourceSeeds:
		res.Seeds = min(MaxResourceStock, res.Seeds+quantity)
	}

	return res, nil
}
