package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Identifier prefixes embedded in scannable code payloads. These are part of
// the wire contract with printed labels already in the field and must not change.
const (
	LotPrefix     = "LOT_"
	ProductPrefix = "PROD_"
)

var (
	// ErrMalformed means the scanned value matched no known payload shape.
	ErrMalformed = errors.New("malformed_code")
	// ErrNotAProduct means the value decoded fine but does not identify a product.
	ErrNotAProduct = errors.New("not_a_product_code")
)

var lotQueryPattern = regexp.MustCompile(`lotId=([^&]+)`)

// NewLotID issues a lot identifier scoped to the node's snowflake sequence.
// Snowflake IDs are monotonic per node, so concurrent lot creation cannot
// collide; the lots primary key backs this up at the store level.
func NewLotID(node *snowflake.Node) string {
	return LotPrefix + node.Generate().String()
}

// ProductID derives the identifier for the product at the given ordinal within
// a lot. The derivation is deterministic and embeds the lot suffix, so two
// lots can never produce the same product identifier even for equal ordinals.
func ProductID(lotID string, ordinal int) string {
	suffix := strings.TrimPrefix(lotID, LotPrefix)
	return fmt.Sprintf("%s%s_%04d", ProductPrefix, suffix, ordinal)
}

// LotPayload is the structured content of a lot package code. Only LotID is
// required by the decoder; the rest is descriptive.
type LotPayload struct {
	LotID          string `json:"lotId"`
	ManufacturerID string `json:"manufacturerId,omitempty"`
	ProductType    string `json:"productType,omitempty"`
	Quantity       int    `json:"quantity,omitempty"`
}

// EncodeLotPayload renders the scannable lot package payload.
func EncodeLotPayload(p LotPayload) (string, error) {
	if strings.TrimSpace(p.LotID) == "" {
		return "", ErrMalformed
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeLotPayload extracts a lot identifier from a raw scan. Codes produced
// upstream come back either as the JSON payload above or as a flat query
// string containing lotId=<value>; both are accepted.
func DecodeLotPayload(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMalformed
	}

	var payload struct {
		LotID string `json:"lotId"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		if id := strings.TrimSpace(payload.LotID); id != "" {
			return id, nil
		}
		return "", ErrMalformed
	}

	if m := lotQueryPattern.FindStringSubmatch(raw); m != nil {
		if id := strings.TrimSpace(m[1]); id != "" {
			return id, nil
		}
	}

	return "", ErrMalformed
}

// EncodeProductPayload renders the scannable product code. The token is the
// product identifier itself so labels stay short.
func EncodeProductPayload(productID string) string {
	return productID
}

// DecodeProductPayload extracts a product identifier from a raw scan. A value
// starting with the product prefix is returned as-is. URL-shaped values are
// split on path separators and the last non-empty segment is tested, which
// covers codes printed as deep links.
func DecodeProductPayload(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMalformed
	}

	if strings.HasPrefix(raw, ProductPrefix) {
		return raw, nil
	}

	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		for i := len(parts) - 1; i >= 0; i-- {
			if parts[i] == "" {
				continue
			}
			if strings.HasPrefix(parts[i], ProductPrefix) {
				return parts[i], nil
			}
			break
		}
	}

	return "", ErrNotAProduct
}
