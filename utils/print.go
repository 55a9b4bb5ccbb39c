package utils

import (
	"encoding/json"
	"io"
)

// PrettyPrint writes every value to w as indented JSON, one per line.
func PrettyPrint(w io.Writer, v ...interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	for _, i := range v {
		if err := enc.Encode(i); err != nil {
			return err
		}
	}
	return nil
}
