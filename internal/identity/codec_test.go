package identity

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLotID_Unique(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewLotID(node)
		assert.True(t, len(id) > len(LotPrefix))
		assert.False(t, seen[id], "duplicate lot id %s", id)
		seen[id] = true
	}
}

func TestProductID_Deterministic(t *testing.T) {
	a := ProductID("LOT_123456", 3)
	b := ProductID("LOT_123456", 3)
	assert.Equal(t, a, b)
	assert.Equal(t, "PROD_123456_0003", a)
}

func TestProductID_NoCrossLotCollision(t *testing.T) {
	seen := map[string]string{}
	for _, lot := range []string{"LOT_1", "LOT_2", "LOT_12"} {
		for ord := 0; ord < 50; ord++ {
			id := ProductID(lot, ord)
			prev, ok := seen[id]
			require.False(t, ok, "product id %s issued for both %s and %s", id, prev, lot)
			seen[id] = lot
		}
	}
}

func TestDecodeLotPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "json payload", raw: `{"lotId":"LOT_7","productType":"rail pad"}`, want: "LOT_7"},
		{name: "query string", raw: "lotId=LOT_7&ts=1", want: "LOT_7"},
		{name: "json missing lotId", raw: `{"productType":"rail pad"}`, wantErr: ErrMalformed},
		{name: "free text", raw: "not a code", wantErr: ErrMalformed},
		{name: "empty", raw: "", wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLotPayload(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDecodeLotPayload_RoundTrip(t *testing.T) {
	payload, err := EncodeLotPayload(LotPayload{LotID: "LOT_42", ProductType: "clip", Quantity: 10})
	require.NoError(t, err)

	got, err := DecodeLotPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "LOT_42", got)
}

func TestDecodeProductPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "bare id", raw: "PROD_00123", want: "PROD_00123"},
		{name: "deep link", raw: "https://x/y/PROD_00123", want: "PROD_00123"},
		{name: "trailing slash", raw: "https://x/PROD_00123/", want: "PROD_00123"},
		{name: "lot code scanned", raw: `{"lotId":"LOT_7"}`, wantErr: ErrNotAProduct},
		{name: "url without product", raw: "https://x/y/other", wantErr: ErrNotAProduct},
		{name: "empty", raw: "", wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeProductPayload(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors_Distinguishable(t *testing.T) {
	_, lotErr := DecodeLotPayload("garbage")
	_, prodErr := DecodeProductPayload("garbage")
	assert.ErrorIs(t, lotErr, ErrMalformed)
	assert.ErrorIs(t, prodErr, ErrNotAProduct)
	assert.NotErrorIs(t, prodErr, ErrMalformed)
}
