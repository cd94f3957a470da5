package validation

import "strings"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewError(code int, message string) Error {
	return Error{Code: code, Message: message}
}

// Result collects field errors in the order the checks ran.
type Result struct {
	errors []Error
}

func NewResult() *Result {
	return &Result{}
}

func (r *Result) Add(err Error) {
	r.errors = append(r.errors, err)
}

func (r *Result) HasErrors() bool {
	return r != nil && len(r.errors) > 0
}

func (r *Result) Errors() []Error {
	if r == nil {
		return nil
	}
	out := make([]Error, len(r.errors))
	copy(out, r.errors)
	return out
}

func (r *Result) Codes() []int {
	if r == nil {
		return nil
	}
	codes := make([]int, 0, len(r.errors))
	for _, e := range r.errors {
		codes = append(codes, e.Code)
	}
	return codes
}

func (r *Result) String() string {
	if r == nil || len(r.errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.errors))
	for _, e := range r.errors {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}
