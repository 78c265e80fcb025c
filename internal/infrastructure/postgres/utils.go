package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasSQLState(err, "23505")
}

// isForeignKeyViolation verifica una violación de llave foránea (23503):
// movimiento que referencia un producto o bodega inexistente, o borrado de
// una entidad aún referenciada.
func isForeignKeyViolation(err error) bool {
	return hasSQLState(err, "23503")
}

// isSerializationFailure verifica un fallo de serialización (40001) o un
// deadlock (40P01): dos transacciones concurrentes validaron contra el mismo
// saldo. El ledger reintenta estos casos de forma acotada.
func isSerializationFailure(err error) bool {
	return hasSQLState(err, "40001") || hasSQLState(err, "40P01")
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
