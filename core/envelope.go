package core

import (
	"encoding/json"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Status is the normalized envelope status. The upstream API is inconsistent
// about casing ("success" vs "Success"), so raw values are normalized exactly
// once, here, and downstream code compares against these constants only.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusFail    Status = "fail"
)

func NormalizeStatus(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}

// Envelope is the uniform response wrapper the storefront API uses:
// {status, data, message?, count?, numOfCartItems?}. Auth endpoints add a
// top-level token and user object. Data stays raw until a resource helper
// decodes it into its concrete shape.
type Envelope struct {
	Status         Status
	Message        string
	Count          int
	Results        int
	NumOfCartItems int
	Token          string
	Data           json.RawMessage
	User           json.RawMessage
}

type envelopeWire struct {
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	Count          int             `json:"count"`
	Results        int             `json:"results"`
	NumOfCartItems int             `json:"numOfCartItems"`
	Token          string          `json:"token"`
	Data           json.RawMessage `json:"data"`
	User           json.RawMessage `json:"user"`
}

// DecodeEnvelope parses an API response body. An empty or whitespace-only
// body (HTTP 204 and some delete endpoints) yields a zero envelope rather
// than a decode error; malformed JSON is a decode failure.
func DecodeEnvelope(body []byte) (Envelope, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return Envelope{}, nil
	}
	wire := envelopeWire{}
	if err := json.Unmarshal(body, &wire); err != nil {
		return Envelope{}, goerrors.Wrap(err, goerrors.CategoryExternal, "core: decode response envelope").
			WithTextCode(ErrorDecodeFailure)
	}
	return Envelope{
		Status:         NormalizeStatus(wire.Status),
		Message:        strings.TrimSpace(wire.Message),
		Count:          wire.Count,
		Results:        wire.Results,
		NumOfCartItems: wire.NumOfCartItems,
		Token:          strings.TrimSpace(wire.Token),
		Data:           wire.Data,
		User:           wire.User,
	}, nil
}

// OK reports whether the envelope signals success. Some endpoints omit the
// status field and put "success" in message instead (cart clear does this).
func (e Envelope) OK() bool {
	if e.Status == StatusSuccess {
		return true
	}
	return e.Status == "" && NormalizeStatus(e.Message) == StatusSuccess
}

// DecodeData unmarshals the envelope data payload into out. A missing or
// null payload leaves out untouched and returns nil.
func (e Envelope) DecodeData(out any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "core: decode envelope data").
			WithTextCode(ErrorDecodeFailure)
	}
	return nil
}

// DecodeUser unmarshals the auth-endpoint user object, when present.
func (e Envelope) DecodeUser(out any) error {
	if len(e.User) == 0 || string(e.User) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.User, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "core: decode envelope user").
			WithTextCode(ErrorDecodeFailure)
	}
	return nil
}
