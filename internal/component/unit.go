// internal/component/unit.go
package component

// Unit — стрелок, поставленный игроком.
type Unit struct {
	DefID string // ID из определения юнита
	Slot  int    // Слот магазина, к которому относится юнит
}
