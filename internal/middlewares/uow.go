package middlewares

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/expense-tracker/internal/uow"
)

// UnitOfWorkMiddleware gives every request its own unit of work. Mutations
// are only staged in it; nothing reaches the database until a handler commits
// with SaveChanges, so an aborted request simply drops its staged changes.
func UnitOfWorkMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := uow.WithContext(r.Context(), uow.New(db))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
