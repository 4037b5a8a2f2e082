package pushapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexString acepta string, número, bool o null y lo guarda como texto (null queda vacío).
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*s = flexString(b)
		return nil
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("valor no textual: %s", b)
	}
	*s = flexString(n.String())
	return nil
}

// flexOrderNo número de stock order asignado por push-api.
// null, false, "" y el cero numérico cuentan como no informado; un string "0" sí cuenta.
type flexOrderNo struct {
	text string
	set  bool
}

func (o *flexOrderNo) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	o.text = string(s)

	b = bytes.TrimSpace(b)
	switch {
	case len(b) > 0 && b[0] == '"':
		o.set = o.text != ""
	case bytes.Equal(b, []byte("null")), bytes.Equal(b, []byte("false")):
		o.set = false
	case bytes.Equal(b, []byte("true")):
		o.set = true
	default:
		f, err := strconv.ParseFloat(o.text, 64)
		o.set = err != nil || f != 0
	}
	return nil
}

// parseQty convierte el qty crudo de una línea: número (se trunca) o string numérico.
// Ausente o null cuenta como 0. Solo se llama para la línea cuyo SKU coincide.
func parseQty(raw json.RawMessage) (int, error) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("qty no numérico: %q", s)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, fmt.Errorf("qty no numérico: %s", b)
	}
	return int(f), nil
}
