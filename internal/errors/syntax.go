package errors

import "fmt"

// SyntaxError is a parse failure in an input file.
type SyntaxError struct {
	*BaseError
	Token string // offending source text, possibly truncated
}

const maxTokenLength = 40

// NewSyntaxError creates a syntax error at loc. token is the source text at
// the failure point.
func NewSyntaxError(loc SourceLocation, token string) *SyntaxError {
	if len(token) > maxTokenLength {
		token = token[:maxTokenLength] + "..."
	}
	message := "syntax error"
	if token != "" {
		message = fmt.Sprintf("syntax error near %q", token)
	}
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message).
			WithLocation(loc).
			WithContext("token", token),
		Token: token,
	}
}

// NewMissingSyntaxError reports a token the parser expected but did not find.
func NewMissingSyntaxError(loc SourceLocation, expected string) *SyntaxError {
	err := &SyntaxError{
		BaseError: Newf(SyntaxErrorCode, "syntax error: missing %s", expected).
			WithLocation(loc),
	}
	err.WithSuggestion(fmt.Sprintf("insert %s at %s", expected, loc))
	return err
}
