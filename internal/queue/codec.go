package queue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adsabs/adsboost/schema"
	"github.com/fxamacker/cbor/v2"
)

// ErrInvalidCBOR is returned when an outbound message cannot be decoded.
var ErrInvalidCBOR = errors.New("invalid CBOR data")

// encMode encodes with sorted map keys and shortest floats so equal responses are byte-identical.
var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor encoder options: %v", err))
	}
	return em
}()

// EncodeResponse serializes an outbound boost response.
func EncodeResponse(resp schema.BoostResponse) ([]byte, error) {
	data, err := encMode.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode boost response: %w", err)
	}
	return data, nil
}

// DecodeResponse parses a CBOR-encoded boost response.
func DecodeResponse(data []byte) (schema.BoostResponse, error) {
	var resp schema.BoostResponse
	if len(data) == 0 {
		return resp, ErrInvalidCBOR
	}
	dec := cbor.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&resp); err != nil {
		return resp, fmt.Errorf("%w: %v", ErrInvalidCBOR, err)
	}
	return resp, nil
}

// DeadLetter is what lands on the failed list for a message that could not be processed.
type DeadLetter struct {
	ID       string    `json:"id"`
	Payload  string    `json:"payload"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// newDeadLetter keeps the original payload verbatim so it can be replayed.
func newDeadLetter(id string, payload []byte, cause error, now time.Time) DeadLetter {
	dl := DeadLetter{ID: id, Payload: string(payload), FailedAt: now.UTC()}
	if cause != nil {
		dl.Error = cause.Error()
	}
	return dl
}

// DecodeDeadLetter parses an entry of the failed list.
func DecodeDeadLetter(data []byte) (DeadLetter, error) {
	var dl DeadLetter
	if err := json.Unmarshal(data, &dl); err != nil {
		return dl, fmt.Errorf("invalid dead letter: %w", err)
	}
	return dl, nil
}
