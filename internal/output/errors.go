package output

import (
	"errors"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// Exit code constants.
const (
	ExitSuccess   = 0
	ExitGeneral   = 1
	ExitUsage     = 2
	ExitAPI       = 3
	ExitConfig    = 4
	ExitCancelled = 5
)

// AsRecord returns the ErrorRecord in err's chain.
func AsRecord(err error) (*domain.ErrorRecord, bool) {
	var rec *domain.ErrorRecord
	if errors.As(err, &rec) {
		return rec, true
	}
	return nil, false
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if rec, ok := AsRecord(err); ok {
		switch rec.Category {
		case domain.CategoryOperationStopped:
			return ExitCancelled
		case domain.CategoryInvalidData:
			return ExitAPI
		case domain.CategoryInvalidArgument:
			return ExitUsage
		case domain.CategoryObjectNotFound:
			return ExitConfig
		}
	}

	switch {
	case errors.Is(err, domain.ErrConfirmationDeclined):
		return ExitCancelled
	case errors.Is(err, domain.ErrNoAccount),
		errors.Is(err, domain.ErrAuthRequired),
		errors.Is(err, domain.ErrAuthExpired):
		return ExitConfig
	case errors.Is(err, domain.ErrInvalidInput):
		return ExitUsage
	default:
		return ExitGeneral
	}
}

// Hint returns a suggestion for errors the user can fix locally.
func Hint(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoAccount):
		return "register a domain with 'gshell account add' or pass --domain"
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthExpired):
		return "sign in again with 'gshell account login'"
	case errors.Is(err, domain.ErrPermissionDenied):
		return "check the admin role and the scopes granted to the account"
	default:
		return ""
	}
}
