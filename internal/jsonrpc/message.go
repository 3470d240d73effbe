package jsonrpc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/utils"
)

type messageType int

const (
	typeUnknown messageType = iota
	typeRequest
	typeResponse
	typeNotification
)

const version = "2.0"

// http://www.jsonrpc.org/specification#error_object
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

type Request struct {
	ID     *ID              `json:"id"`
	Method string           `json:"method"`
	Params *json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the caller expects no reply.
func (r *Request) IsNotification() bool {
	return !r.ID.IsSet()
}

type message struct {
	JSONRPC string           `json:"jsonrpc,omitempty"`
	ID      *ID              `json:"id,omitempty"`
	Method  *string          `json:"method,omitempty"`
	Params  *json.RawMessage `json:"params,omitempty"`
	Result  *json.RawMessage `json:"result,omitempty"`
	Error   *Error           `json:"error,omitempty"`

	msgType messageType
}

func (m *message) classify() {
	hasReply := m.Result != nil || m.Error != nil
	switch {
	case m.Method != nil && hasReply:
		m.msgType = typeUnknown
	case m.Method != nil && m.ID.IsSet():
		m.msgType = typeRequest
	case m.Method != nil:
		m.msgType = typeNotification
	case hasReply && m.ID.IsSet():
		m.msgType = typeResponse
	default:
		m.msgType = typeUnknown
	}
}

func marshalRaw(v any, what string) (*json.RawMessage, error) {
	bs, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(ErrCodeParseError, err, "marshal %s", what)
	}
	return utils.Ptr(json.RawMessage(bs)), nil
}

func newRequestMessage(method string, params any) (*message, error) {
	raw, err := marshalRaw(params, "params")
	if err != nil {
		return nil, err
	}
	return &message{
		JSONRPC: version,
		ID:      newStringID(uuid.NewString()),
		Method:  &method,
		Params:  raw,
		msgType: typeRequest,
	}, nil
}

func newNotificationMessage(method string, params any) (*message, error) {
	raw, err := marshalRaw(params, "params")
	if err != nil {
		return nil, err
	}
	return &message{
		JSONRPC: version,
		Method:  &method,
		Params:  raw,
		msgType: typeNotification,
	}, nil
}

func newResponseMessage(id ID, result any, rpcErr *Error) (*message, error) {
	m := &message{
		JSONRPC: version,
		ID:      &id,
		Error:   rpcErr,
		msgType: typeResponse,
	}
	if rpcErr == nil {
		raw, err := marshalRaw(result, "result")
		if err != nil {
			return nil, err
		}
		m.Result = raw
	}
	return m, nil
}

// ID is a request id, either a string or an unsigned integer.
type ID struct {
	Num      uint64
	Str      string
	isString bool
}

func newStringID(id string) *ID {
	return &ID{Str: id, isString: true}
}

func NewNumID(id uint64) *ID {
	return &ID{Num: id}
}

func (id *ID) IsSet() bool {
	return id != nil && (id.isString || id.Num != 0)
}

func (id *ID) String() string {
	if id.isString {
		return strconv.Quote(id.Str)
	}
	return strconv.FormatUint(id.Num, 10)
}

func (id *ID) MarshalJSON() ([]byte, error) {
	if id.isString {
		return json.Marshal(id.Str)
	}
	return json.Marshal(id.Num)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID{Str: s, isString: true}
		return nil
	}
	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID{Num: n}
	return nil
}

// Error is the error object of a response.
type Error struct {
	Code    int64            `json:"code"`
	Message string           `json:"message"`
	Data    *json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// WithData returns a copy of e carrying data. Unmarshalable data is dropped.
func (e *Error) WithData(data any) *Error {
	out := *e
	if raw, err := marshalRaw(data, "error data"); err == nil {
		out.Data = raw
	}
	return &out
}
