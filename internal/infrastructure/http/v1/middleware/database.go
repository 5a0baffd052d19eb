package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"bizledger/internal/core/dbctx"
	"bizledger/internal/infrastructure/storage/postgres"
)

// Database injects the connection pool and a per-request transaction
// manager into the request context. It must run before any handler that
// touches the database: repositories resolve their querier from the
// context rather than holding a connection.
func Database(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		txManager := postgres.NewTxManagerFromRawPool(pool)

		ctx = dbctx.WithPool(ctx, pool)
		ctx = dbctx.WithTxManager(ctx, txManager)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
