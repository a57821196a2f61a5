package graph

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"

	httpx "github.com/pennywise/pennywise-api/internal/http"
)

// request is the standard GraphQL POST body.
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler executes GraphQL requests against a schema. Execution errors ride
// in the response envelope with status 200; only malformed requests get a
// 4xx status.
type Handler struct {
	schema graphql.Schema
}

// NewHandler constructs a Handler for the given schema.
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		httpx.WriteError(w, httpx.ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_request",
			Err:     errors.New("query is required"),
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	httpx.WriteJSON(w, http.StatusOK, result)
}
