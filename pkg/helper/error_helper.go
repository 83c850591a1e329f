package helper

import (
	"fmt"

	"formlink/formlink_go_form_service/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func HandleDatabaseError(err error, log logger.LoggerI, message string) error {
	if err == nil {
		return nil
	}

	if err == pgx.ErrNoRows {
		return status.Error(codes.NotFound, "not found")
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		log.Error(message+": "+err.Error(), logger.String("column", pgErr.ColumnName))

		switch pgErr.Code {
		case "23505":
			// Unique violation
			return status.Error(codes.AlreadyExists, err.Error())
		case "23503":
			// Foreign key violation
			return status.Error(codes.FailedPrecondition, fmt.Sprintf("foreign key violation: %v", pgErr.Message))
		case "23502":
			// Not null violation
			return status.Error(codes.InvalidArgument, fmt.Sprintf("not null violation: %v", pgErr.Message))
		case "08006":
			// Connection failure
			return status.Error(codes.Unavailable, fmt.Sprintf("connection failure: %v", pgErr.Message))
		case "42P01":
			// Undefined table
			return status.Error(codes.NotFound, fmt.Sprintf("undefined table: %v", pgErr.Message))
		case "40P01":
			// Deadlock detected
			return status.Error(codes.Aborted, fmt.Sprintf("deadlock detected: %v", pgErr.Message))
		case "40001":
			// Serialization failure
			return status.Error(codes.Aborted, "serialization failure, retry transaction")
		default:
			return status.Error(codes.Internal, fmt.Sprintf("postgres error: %v", pgErr.Message))
		}
	}

	log.Error(message, logger.Error(err))

	return status.Error(codes.Internal, fmt.Sprintf("unknown error: %v", err))
}

// IsNotFound reports whether err is the storage layer's "no such row" outcome.
// Missing rows are a normal, non-exceptional result for webhook processing.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	st, ok := status.FromError(err)

	return ok && st.Code() == codes.NotFound
}
