package handler

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps request bodies; every payload this API accepts is a handful of fields.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
