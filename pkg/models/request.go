package models

// ValuationRequest asks for a path to be evaluated. When Contracts is empty
// the server evaluates its stored book.
type ValuationRequest struct {
	Path      []float64      `json:"path"`
	Contracts []ContractSpec `json:"contracts,omitempty"`
}

// ErrorResponse is the JSON body of a failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
