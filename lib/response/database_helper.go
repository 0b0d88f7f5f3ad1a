package response

import (
	"errors"

	"github.com/getevo/evo/v2/lib/log"
	"gorm.io/gorm"
)

// HandleDBError maps common database errors to consistent responses.
// Returns nil when err is nil so callers can write:
//
//	if resp := response.HandleDBError(err, "conversation not found", "GetConversation"); resp != nil {
//	    return resp
//	}
func HandleDBError(err error, notFoundMsg string, context string) interface{} {
	if err == nil {
		return nil
	}

	log.Error("%s: %v", context, err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}

	return Error(ErrDatabaseError)
}

// HandleDBErrorWithDetails maps database errors to responses carrying the
// underlying error detail.
func HandleDBErrorWithDetails(err error, notFoundMsg string, context string) interface{} {
	if err == nil {
		return nil
	}

	log.Error("%s: %v", context, err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(NewErrorWithDetails(ErrorCodeNotFound, notFoundMsg, 404, "Resource not found"))
	}

	return Error(NewErrorWithDetails(ErrorCodeDatabaseError, "Database operation failed", 500, err.Error()))
}
