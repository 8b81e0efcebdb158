package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	internal_errors "github.com/parlor-dev/parlor/internal/errors"
)

// objectIdVar parses the named mux path variable as an ObjectID.
func objectIdVar(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := mux.Vars(r)[name]
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, internal_errors.Validation(fmt.Sprintf("Invalid %s id", name))
	}
	return id, nil
}

// parseIntParam parses an integer parameter and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, internal_errors.Validation(fmt.Sprintf("Invalid %s: must be an integer", paramName))
	}
	return val, nil
}
