package model

// FieldError describes a single invalid field on an entity.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FirstMessage returns the message of the first field error, or "".
func FirstMessage(errs []FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Message
}
