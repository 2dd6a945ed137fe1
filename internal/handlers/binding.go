package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// BindNestedOrFlat decodes a JSON body that is either wrapped in key ({"customer": {...}})
// or flat, then checks the struct's binding tags. The body stays readable afterwards.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var body []byte
	if c.Request.Body != nil {
		var err error
		if body, err = io.ReadAll(c.Request.Body); err != nil {
			return err
		}
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	payload := body
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if inner, ok := wrapped[key]; ok {
			payload = inner
		}
	}

	if err := json.Unmarshal(payload, obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}

// isValidationError tells a failed binding tag apart from malformed JSON
func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
