package inventory

import (
	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// State es la proyección valuada de un producto: stock y costo promedio
// ponderado. Es el acumulador del fold sobre el libro de movimientos.
type State struct {
	Stock       int
	AverageCost decimal.Decimal // 2 decimales
}

// Apply aplica un movimiento al estado y devuelve el nuevo estado (función
// pura, servicio de dominio).
//
// ENTRADA: NuevoCosto = ((Stock*CostoActual) + (Cantidad*CostoEntrada)) / (Stock+Cantidad),
// redondeado half-up a 2 decimales una sola vez al final.
// SALIDA: consume al costo promedio vigente sin alterarlo; devuelve
// ErrInsufficientStock si la cantidad supera el stock (error verificado, no
// pánico: el caller pre-valida pero el motor defiende el invariante igual).
func Apply(state State, kind string, quantity int, unitCost decimal.Decimal) (State, error) {
	if quantity <= 0 || unitCost.IsNegative() {
		return state, domain.ErrInvalidMovement
	}
	switch kind {
	case entity.MovementEntrada:
		qty := decimal.NewFromInt(int64(quantity))
		newStock := state.Stock + quantity
		if newStock == 0 {
			return State{Stock: 0, AverageCost: decimal.Zero}, nil
		}
		total := state.AverageCost.Mul(decimal.NewFromInt(int64(state.Stock))).Add(unitCost.Mul(qty))
		newCost := total.Div(decimal.NewFromInt(int64(newStock))).Round(2)
		return State{Stock: newStock, AverageCost: newCost}, nil
	case entity.MovementSalida:
		if quantity > state.Stock {
			return state, domain.ErrInsufficientStock
		}
		return State{Stock: state.Stock - quantity, AverageCost: state.AverageCost}, nil
	default:
		return state, domain.ErrInvalidMovement
	}
}

// Fold repliega una secuencia de movimientos sobre un estado inicial vacío.
// Útil para verificar que la proyección cacheada del producto coincide con
// el libro (invariante de consistencia del ledger).
func Fold(movements []*entity.InventoryMovement) (State, error) {
	state := State{AverageCost: decimal.Zero}
	for _, m := range movements {
		next, err := Apply(state, m.Kind, m.Quantity, m.UnitCost)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
