package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// CategoryRepository defines persistence operations for transaction categories
type CategoryRepository interface {
	shared.OwnedRepository[TransactionCategory]
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]TransactionCategory, error)
}

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	shared.OwnedRepository[Transaction]
	// Summarize aggregates income, expense, net and count over the
	// transactions matching the filter.
	Summarize(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*Summary, error)
	// BalancesByAccount groups matching transactions by bank account.
	// Accounts without matching transactions are absent from the result.
	BalancesByAccount(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]AccountBalance, error)
	CountByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (int64, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]Transaction, error)
}
