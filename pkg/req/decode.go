package req

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode разбирает тело запроса в T. Пустое тело дает нулевое значение.
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, nil
	}
	err := json.NewDecoder(body).Decode(&payload)
	if errors.Is(err, io.EOF) {
		return payload, nil
	}
	if err != nil {
		return payload, fmt.Errorf("invalid request body: %w", err)
	}
	return payload, nil
}
