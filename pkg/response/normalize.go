package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Normalize converts a handler's return value into a Response.
//
// set holds headers the handler set explicitly; they are merged onto the
// result without overwriting headers a pre-built response already carries.
// A non-zero status overrides the default status of non-Response values.
func Normalize(v any, set http.Header, status int) (*Response, error) {
	switch val := v.(type) {
	case *Response:
		if val == nil {
			return normalizeEmpty(set, status), nil
		}
		val.MergeBase(set)
		if val.Status == 0 {
			val.Status = http.StatusOK
		}
		return val, nil
	case Response:
		r := val
		r.Header = r.Header.Clone()
		return Normalize(&r, set, status)
	case nil:
		return normalizeEmpty(set, status), nil
	case string:
		return textResponse([]byte(val), set, status), nil
	case bool:
		return textResponse([]byte(strconv.FormatBool(val)), set, status), nil
	case int:
		return textResponse([]byte(strconv.Itoa(val)), set, status), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return textResponse([]byte(fmt.Sprint(val)), set, status), nil
	case float32:
		return textResponse([]byte(strconv.FormatFloat(float64(val), 'g', -1, 32)), set, status), nil
	case float64:
		return textResponse([]byte(strconv.FormatFloat(val, 'g', -1, 64)), set, status), nil
	case []byte:
		return binaryResponse(val, set, status), nil
	case io.Reader:
		return binaryResponse(val, set, status), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("response: encode %T as JSON: %w", v, err)
	}
	r := newWith(set, status, http.StatusOK)
	if r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", ContentTypeJSON)
	}
	r.Body = data
	return r, nil
}

func newWith(set http.Header, status, fallback int) *Response {
	if status == 0 {
		status = fallback
	}
	r := New(status)
	mergeAbsent(r.Header, set)
	return r
}

func normalizeEmpty(set http.Header, status int) *Response {
	return newWith(set, status, http.StatusNoContent)
}

func textResponse(body []byte, set http.Header, status int) *Response {
	r := newWith(set, status, http.StatusOK)
	if r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", ContentTypeText)
	}
	r.Body = body
	return r
}

func binaryResponse(body any, set http.Header, status int) *Response {
	r := newWith(set, status, http.StatusOK)
	r.Body = body
	return r
}
