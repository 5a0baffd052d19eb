package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bizledger/internal/core/id"
	"bizledger/internal/domain/catalogs/budget"
	"bizledger/internal/infrastructure/storage/postgres"
)

const budgetTable = "cat_budgets"

// BudgetRepo implements budget.Repository.
type BudgetRepo struct {
	*BaseCatalogRepo[*budget.Budget]
}

// NewBudgetRepo creates a new budget repository.
func NewBudgetRepo() *BudgetRepo {
	return &BudgetRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*budget.Budget](
			budgetTable,
			postgres.ExtractDBColumns[budget.Budget](),
			func() *budget.Budget { return &budget.Budget{} },
		),
	}
}

// ListByAccount retrieves budgets attached to one analytical account.
func (r *BudgetRepo) ListByAccount(ctx context.Context, accountID id.ID) ([]*budget.Budget, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"analytical_account_id": accountID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("period_start DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*budget.Budget
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by account: %w", err)
	}

	return items, nil
}
