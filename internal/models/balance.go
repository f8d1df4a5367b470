package models

// ComputeBalance folds entries in order: credits add, every other kind subtracts.
func ComputeBalance(entries []Statement) float64 {
	var balance float64
	for _, entry := range entries {
		if entry.Kind == KindCredit {
			balance += entry.Amount
			continue
		}
		balance -= entry.Amount
	}
	return balance
}
