package api

import (
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// JSONSerializer swaps echo's encoding/json serializer for goccy/go-json.
type JSONSerializer struct{}

func (JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize completes echo.JSONSerializer; no route reads a JSON body.
func (JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	return json.NewDecoder(c.Request().Body).Decode(i)
}
