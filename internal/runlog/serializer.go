package runlog

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gorm.io/gorm/schema"
)

// seqSerializer stores []int64 and []float64 columns as comma-separated text. Floats are
// written in the shortest form that parses back to the same value.
type seqSerializer struct{}

func (seqSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue any) error {
	ty := field.FieldType
	if ty != reflect.TypeFor[[]int64]() && ty != reflect.TypeFor[[]float64]() {
		return fmt.Errorf("bad field value type: %v", ty)
	}
	val := field.ReflectValueOf(ctx, dst)
	if dbValue == nil {
		val.Set(reflect.Zero(ty))
		return nil
	}
	var data string
	switch v := dbValue.(type) {
	case []byte:
		data = string(v)
	case string:
		data = v
	default:
		return fmt.Errorf("bad db value type: %T", dbValue)
	}
	var parts []string
	if data != "" {
		parts = strings.Split(data, ",")
	}
	if ty == reflect.TypeFor[[]int64]() {
		res := make([]int64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return fmt.Errorf("parse int #%v: %w", i, err)
			}
			res[i] = v
		}
		val.Set(reflect.ValueOf(res))
		return nil
	}
	res := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fmt.Errorf("parse float #%v: %w", i, err)
		}
		res[i] = v
	}
	val.Set(reflect.ValueOf(res))
	return nil
}

func (seqSerializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue any) (any, error) {
	var b strings.Builder
	switch v := fieldValue.(type) {
	case []int64:
		if v == nil {
			return nil, nil
		}
		for i, x := range v {
			if i != 0 {
				_ = b.WriteByte(',')
			}
			_, _ = b.WriteString(strconv.FormatInt(x, 10))
		}
	case []float64:
		if v == nil {
			return nil, nil
		}
		for i, x := range v {
			if i != 0 {
				_ = b.WriteByte(',')
			}
			_, _ = b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
	default:
		return nil, fmt.Errorf("bad value type %T", fieldValue)
	}
	return b.String(), nil
}

func init() {
	schema.RegisterSerializer("seq", seqSerializer{})
}
