package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v2"
)

// From converts a native Go value into a Value.
//
// Unsigned integers above math.MaxInt64 become their exact decimal Text. Maps without an inherent order (map[string]any, map[any]any) become records
// with keys sorted. yaml.MapSlice keeps its order. Unknown types fall back to
// their fmt representation as Text.
func From(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null{}
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(v)
	case int8:
		return Int(v)
	case int16:
		return Int(v)
	case int32:
		return Int(v)
	case int64:
		return Int(v)
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return Int(v)
	case uint16:
		return Int(v)
	case uint32:
		return Int(v)
	case uint64:
		return fromUint(v)
	case float32:
		return Float(v)
	case float64:
		return Float(v)
	case string:
		return Text(v)
	case []byte:
		return Text(v)
	case []any:
		out := make(List, len(v))
		for i, e := range v {
			out[i] = From(e)
		}
		return out
	case []string:
		out := make(List, len(v))
		for i, e := range v {
			out[i] = Text(e)
		}
		return out
	case []Value:
		return List(v)
	case yaml.MapSlice:
		r := NewRecord(len(v))
		for _, item := range v {
			r.Set(fmt.Sprint(item.Key), From(item.Value))
		}
		return r
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		r := NewRecord(len(keys))
		for _, k := range keys {
			r.Set(k, From(v[k]))
		}
		return r
	case map[any]any:
		keys := make([]string, 0, len(v))
		byKey := make(map[string]any, len(v))
		for k, e := range v {
			ks := fmt.Sprint(k)
			keys = append(keys, ks)
			byKey[ks] = e
		}
		sort.Strings(keys)
		r := NewRecord(len(keys))
		for _, k := range keys {
			r.Set(k, From(byKey[k]))
		}
		return r
	default:
		return Text(fmt.Sprint(v))
	}
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Text(strconv.FormatUint(u, 10))
	}
	return Int(u)
}
