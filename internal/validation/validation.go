package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// MaxBodyBytes bounds request bodies; journal photos arrive base64 encoded.
const MaxBodyBytes = 50 << 20

var ErrEmptyBody = errors.New("request body is empty")

type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

func MustCompile(name, src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return &Schema{name: name, schema: s}
}

// Check validates a JSON document and joins every violation into one error.
func (s *Schema) Check(doc []byte) error {
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s: %s", s.name, strings.Join(msgs, "; "))
}

// ReadBody reads the request body and checks it against s.
func ReadBody(r *http.Request, s *Schema) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(b) > MaxBodyBytes {
		return nil, errors.New("request body too large")
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil, ErrEmptyBody
	}
	if err := s.Check(b); err != nil {
		return nil, err
	}
	return b, nil
}

func Unmarshal(b []byte, dst any) error {
	return json.Unmarshal(b, dst)
}
