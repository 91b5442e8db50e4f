package gerror

import (
	"runtime"

	"github.com/goccy/go-json"
)

type jsonError struct {
	Domain  string `json:"domain"`
	Quark   uint32 `json:"quark"`
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// MarshalJSON renders a set handle as
//
//	{"domain":"g-file-error-quark","quark":7,"code":4,"message":"..."}
//
// and an unset one as null.
func (e *Error) MarshalJSON() ([]byte, error) {
	rec := e.record()
	if rec == nil {
		return []byte("null"), nil
	}
	defer runtime.KeepAlive(e)
	return json.Marshal(jsonError{
		Domain:  domainName(e.library(), rec.Domain),
		Quark:   rec.Domain,
		Code:    rec.Code,
		Message: e.Message(),
	})
}
