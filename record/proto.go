package record

import (
	"fmt"
	"math"
	"strings"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// ToProto fills target from a materialized node or relationship map, the
// inverse of FromProto. A field is looked up by its proto name, then its
// JSON name, then the camelCase form of its name, so maps produced from
// either naming style work. Absent and nil properties leave the field unset;
// properties without a matching field are ignored.
//
// Conversions follow what the database hands back: integers are range
// checked, enums accept numbers or names, and time.Time values fill integer
// fields with epoch milliseconds.
func ToProto(obj map[string]any, target proto.Message) error {
	if target == nil {
		return fmt.Errorf("target message cannot be nil")
	}
	if obj == nil {
		return fmt.Errorf("properties cannot be nil")
	}

	msg := target.ProtoReflect()
	fields := msg.Descriptor().Fields()
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)
		value, ok := property(obj, field)
		if !ok {
			continue
		}
		if err := setField(msg, field, value); err != nil {
			return fmt.Errorf("property %q: %w", field.Name(), err)
		}
	}
	return nil
}

func property(obj map[string]any, field protoreflect.FieldDescriptor) (any, bool) {
	name := string(field.Name())
	for _, key := range []string{name, field.JSONName(), snakeToCamel(name)} {
		if v, ok := obj[key]; ok {
			return v, v != nil
		}
	}
	return nil, false
}

// ToProtos converts materialized rows, creating each target with newMsg.
// Nil rows, as returned for missing nodes, are skipped.
func ToProtos[T proto.Message](rows []map[string]any, newMsg func() T) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			continue
		}
		msg := newMsg()
		if err := ToProto(row, msg); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, msg)
	}
	return out, nil
}

// FromProto extracts the set fields of msg into a property map suitable for
// node or relationship creation. When names are given only those fields are
// extracted.
func FromProto(msg proto.Message, names ...string) map[string]any {
	if msg == nil {
		return nil
	}
	m := msg.ProtoReflect()
	desc := m.Descriptor().Fields()
	out := make(map[string]any)

	add := func(field protoreflect.FieldDescriptor) {
		if field == nil || !m.Has(field) || field.IsList() || field.IsMap() {
			return
		}
		if v, ok := goValue(m.Get(field), field); ok {
			out[string(field.Name())] = v
		}
	}

	if len(names) == 0 {
		for i := 0; i < desc.Len(); i++ {
			add(desc.Get(i))
		}
		return out
	}
	for _, name := range names {
		add(desc.ByName(protoreflect.Name(name)))
	}
	return out
}

func setField(msg protoreflect.Message, field protoreflect.FieldDescriptor, value any) error {
	if field.IsList() || field.IsMap() {
		return fmt.Errorf("repeated and map fields are not supported")
	}

	switch field.Kind() {
	case protoreflect.BoolKind:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		msg.Set(field, protoreflect.ValueOfBool(b))

	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		i, err := toInt64(value)
		if err != nil {
			return err
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return fmt.Errorf("int64 value %d overflows int32", i)
		}
		msg.Set(field, protoreflect.ValueOfInt32(int32(i)))

	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		i, err := toInt64(value)
		if err != nil {
			return err
		}
		msg.Set(field, protoreflect.ValueOfInt64(i))

	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		i, err := toInt64(value)
		if err != nil {
			return err
		}
		if i < 0 || i > math.MaxUint32 {
			return fmt.Errorf("int64 value %d overflows uint32", i)
		}
		msg.Set(field, protoreflect.ValueOfUint32(uint32(i)))

	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		i, err := toInt64(value)
		if err != nil {
			return err
		}
		if i < 0 {
			return fmt.Errorf("negative value %d cannot be converted to uint64", i)
		}
		msg.Set(field, protoreflect.ValueOfUint64(uint64(i)))

	case protoreflect.FloatKind:
		f, err := toFloat64(value)
		if err != nil {
			return err
		}
		msg.Set(field, protoreflect.ValueOfFloat32(float32(f)))

	case protoreflect.DoubleKind:
		f, err := toFloat64(value)
		if err != nil {
			return err
		}
		msg.Set(field, protoreflect.ValueOfFloat64(f))

	case protoreflect.StringKind:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		msg.Set(field, protoreflect.ValueOfString(s))

	case protoreflect.BytesKind:
		switch v := value.(type) {
		case []byte:
			msg.Set(field, protoreflect.ValueOfBytes(v))
		case string:
			msg.Set(field, protoreflect.ValueOfBytes([]byte(v)))
		default:
			return fmt.Errorf("expected []byte or string, got %T", value)
		}

	case protoreflect.EnumKind:
		n, err := toEnum(field, value)
		if err != nil {
			return err
		}
		msg.Set(field, protoreflect.ValueOfEnum(n))

	default:
		return fmt.Errorf("unsupported field kind: %s", field.Kind())
	}
	return nil
}

func goValue(val protoreflect.Value, field protoreflect.FieldDescriptor) (any, bool) {
	switch field.Kind() {
	case protoreflect.BoolKind:
		return val.Bool(), true
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return val.Int(), true
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind, protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return int64(val.Uint()), true
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return val.Float(), true
	case protoreflect.StringKind:
		return val.String(), true
	case protoreflect.BytesKind:
		return val.Bytes(), true
	case protoreflect.EnumKind:
		if ev := field.Enum().Values().ByNumber(val.Enum()); ev != nil {
			return string(ev.Name()), true
		}
		return int64(val.Enum()), true
	}
	// nested messages have no property form
	return nil, false
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("uint64 value %d overflows int64", v)
		}
		return int64(v), nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case time.Time:
		return v.UnixMilli(), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int64", value)
	}
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		i, err := toInt64(value)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %T to float64", value)
		}
		return float64(i), nil
	}
}

func toEnum(field protoreflect.FieldDescriptor, value any) (protoreflect.EnumNumber, error) {
	desc := field.Enum()
	if s, ok := value.(string); ok {
		ev := desc.Values().ByName(protoreflect.Name(s))
		if ev == nil {
			ev = desc.Values().ByName(protoreflect.Name(strings.ToUpper(s)))
		}
		if ev == nil {
			return 0, fmt.Errorf("unknown enum value %q for enum %s", s, desc.FullName())
		}
		return ev.Number(), nil
	}

	i, err := toInt64(value)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %T to enum", value)
	}
	if desc.Values().ByNumber(protoreflect.EnumNumber(i)) == nil {
		return 0, fmt.Errorf("invalid enum number %d for enum %s", i, desc.FullName())
	}
	return protoreflect.EnumNumber(i), nil
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
