package http

import (
	"strconv"

	apperrors "classbook/pkg/errors"

	"github.com/julienschmidt/httprouter"
)

// ParseID reads a positive integer identity from the named route parameter.
func ParseID(ps httprouter.Params, name string) (int64, error) {
	raw := ps.ByName(name)
	if raw == "" {
		return 0, apperrors.InvalidInput(name + " parameter is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return id, nil
}
