package postgres

import (
	"fmt"
	"strings"

	"mypayment-ledger/internal/core/ports"
)

// recordPredicates builds the WHERE clause shared by refunds and transfers.
// walletColumns are ORed against filter.WalletID.
func recordPredicates(filter ports.RecordFilter, walletColumns ...string) (string, []any) {
	var conditions []string
	var args []any
	argIdx := 1

	if filter.WalletID != nil && len(walletColumns) > 0 {
		ors := make([]string, len(walletColumns))
		for i, col := range walletColumns {
			ors[i] = fmt.Sprintf("%s = $%d", col, argIdx)
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
		args = append(args, *filter.WalletID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("creation >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.After != nil {
		conditions = append(conditions, fmt.Sprintf("creation > $%d", argIdx))
		args = append(args, *filter.After)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("creation <= $%d", argIdx))
		args = append(args, *filter.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
