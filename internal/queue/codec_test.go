package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/adsabs/adsboost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() schema.BoostResponse {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return schema.NewBoostResponse(schema.BoostResult{
		Bibcode:       "2023ApJ...123..456A",
		RefereedBoost: 1,
		DoctypeBoost:  1,
		RecencyBoost:  0.5,
		BoostFactor:   1,
		FinalBoosts:   map[schema.Discipline]float64{schema.Astronomy: 0.1, schema.General: 1},
	}, ts, ts)
}

func TestEncodeDecodeResponse(t *testing.T) {
	resp := sampleResponse()

	data, err := EncodeResponse(resp)
	require.NoError(t, err)

	again, err := EncodeResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")

	decoded, err := DecodeResponse(data)
	require.NoError(t, err)
	assert.Equal(t, resp, decoded)
	assert.Equal(t, schema.StatusUpdated, decoded.Status)
	assert.Equal(t, "2025-03-01T12:00:00Z", decoded.Created)
}

func TestDecodeResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte{0xff, 0x00, 0x13}},
		{"wrong type", []byte{0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResponse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidCBOR)
		})
	}
}

func TestDeadLetter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	dl := newDeadLetter("id-1", []byte(`{"bibcode":"x"}`), errors.New("boom"), now)
	assert.Equal(t, "boom", dl.Error)
	assert.Equal(t, time.UTC, dl.FailedAt.Location())

	assert.Empty(t, newDeadLetter("id-2", nil, nil, now).Error)

	_, err := DecodeDeadLetter([]byte("not json"))
	assert.Error(t, err)
	got, err := DecodeDeadLetter([]byte(`{"id":"id-1","payload":"{}","error":"boom","failed_at":"2025-03-01T11:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "{}", got.Payload)
}
