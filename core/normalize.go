package core

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/adsabs/adsboost/schema"
)

// DecodeRecord decodes an inbound message into a normalized record.
// The payload is a JSON object, or a JSON string that itself holds a JSON object.
func DecodeRecord(payload []byte) (schema.Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		var inner string
		if strErr := json.Unmarshal(payload, &inner); strErr != nil {
			return schema.Record{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		if err := json.Unmarshal([]byte(inner), &raw); err != nil {
			return schema.Record{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	if raw == nil {
		return schema.Record{}, fmt.Errorf("%w: null message", ErrInvalidPayload)
	}
	return NormalizeRecord(raw), nil
}

// NormalizeRecord coerces a loosely typed record into its canonical shape.
// It never panics: on unexpected input it returns a minimal record with status "error".
func NormalizeRecord(raw map[string]any) (rec schema.Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = safeRecord(raw, fmt.Sprint(r))
		}
	}()

	rec.Bibcode = scalarString(raw["bibcode"])
	rec.ScixID = scalarString(raw["scix_id"])
	rec.Status = schema.StatusUnknown
	if status := scalarString(raw["status"]); status != "" {
		rec.Status = status
	}

	bib, fb := decodeSection(raw, "bib_data", schema.MalformedBibData)
	rec.Fallbacks = appendFallback(rec.Fallbacks, fb)
	metrics, fb := decodeSection(raw, "metrics", schema.MalformedMetrics)
	rec.Fallbacks = appendFallback(rec.Fallbacks, fb)

	rec.Classifications, fb = toSequence(raw["classifications"], "classifications")
	rec.Fallbacks = appendFallback(rec.Fallbacks, fb)
	rec.Collections, fb = toSequence(raw["collections"], "collections")
	rec.Fallbacks = appendFallback(rec.Fallbacks, fb)

	rec.BibData = schema.BibData{
		Doctype:   scalarString(bib["doctype"]),
		Refereed:  truthy(bib["refereed"]),
		Pubdate:   scalarString(bib["pubdate"]),
		EntryDate: scalarString(bib["entry_date"]),
	}
	rec.BibData.Database, fb = toSequence(bib["database"], "bib_data.database")
	rec.Fallbacks = appendFallback(rec.Fallbacks, fb)

	rec.Metrics = schema.MetricsData{Refereed: truthy(metrics["refereed"])}
	return rec
}

// safeRecord keeps only the identifiers that are plain strings.
func safeRecord(raw map[string]any, detail string) schema.Record {
	bibcode, _ := raw["bibcode"].(string)
	scixID, _ := raw["scix_id"].(string)
	return schema.Record{
		Bibcode:         bibcode,
		ScixID:          scixID,
		Status:          schema.StatusError,
		BibData:         schema.BibData{Database: []string{}},
		Classifications: []string{},
		Collections:     []string{},
		Fallbacks: []schema.Fallback{
			{Field: "record", Reason: schema.NormalizationFailure, Detail: detail},
		},
	}
}

// decodeSection returns the mapping stored under key, decoding JSON strings.
// Undecodable values become an empty mapping plus a fallback.
func decodeSection(raw map[string]any, key string, reason schema.FallbackReason) (map[string]any, *schema.Fallback) {
	switch v := raw[key].(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case string:
		return decodeJSONObject([]byte(v), key, reason)
	case []byte:
		return decodeJSONObject(v, key, reason)
	default:
		return map[string]any{}, &schema.Fallback{Field: key, Reason: reason, Detail: fmt.Sprintf("unexpected type %T", v)}
	}
}

func decodeJSONObject(data []byte, key string, reason schema.FallbackReason) (map[string]any, *schema.Fallback) {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{}, &schema.Fallback{Field: key, Reason: reason, Detail: err.Error()}
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// toSequence turns a scalar-or-sequence value into a string slice.
func toSequence(v any, field string) ([]string, *schema.Fallback) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		if t == "" {
			return []string{}, nil
		}
		return []string{t}, nil
	case []string:
		return slices.Clone(t), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, scalarString(item))
		}
		return out, nil
	case map[string]any:
		if len(t) == 0 {
			return []string{}, nil
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys, &schema.Fallback{Field: field, Reason: schema.CoercedSequence, Detail: "mapping keys used"}
	default:
		if !truthy(t) {
			return []string{}, nil
		}
		return []string{scalarString(t)}, &schema.Fallback{Field: field, Reason: schema.CoercedSequence, Detail: fmt.Sprintf("%T", t)}
	}
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// truthy interprets flags that may arrive as booleans, numbers or strings.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		s := strings.TrimSpace(t)
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return s != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func appendFallback(list []schema.Fallback, fb *schema.Fallback) []schema.Fallback {
	if fb == nil {
		return list
	}
	return append(list, *fb)
}
