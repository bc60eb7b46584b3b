package common

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden access")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")
	ErrInternalServer   = errors.New("internal server error")
	ErrPhaseClosed      = errors.New("phase is closed")
	ErrTeamDisqualified = errors.New("team is disqualified")
	ErrAlreadyInTeam    = errors.New("user is already in a team")
	ErrNotInTeam        = errors.New("user is not in a team")
	ErrTeamFull         = errors.New("team is full")
	ErrAlreadySelected  = errors.New("problem already selected")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
// Gating failures (PhaseClosed, TeamDisqualified) are client errors, not conflicts.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNotInTeam):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrAlreadyInTeam),
		errors.Is(err, ErrTeamFull),
		errors.Is(err, ErrAlreadySelected):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrPhaseClosed),
		errors.Is(err, ErrTeamDisqualified):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
